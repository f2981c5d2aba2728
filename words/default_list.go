package words

// DefaultWords 内置英文词表，按可画性挑选
var DefaultWords = []string{
	"apple", "banana", "bridge", "castle", "cloud", "dragon", "elephant",
	"fire", "guitar", "house", "island", "jacket", "kite", "ladder",
	"mountain", "notebook", "octopus", "penguin", "queen", "rainbow",
	"snowman", "tractor", "umbrella", "volcano", "whale", "xylophone",
	"yacht", "zebra", "airplane", "bicycle", "camera", "dolphin",
	"envelope", "feather", "glasses", "hammer", "igloo", "jellyfish",
	"kangaroo", "lighthouse", "mushroom", "needle", "ostrich", "pyramid",
	"robot", "sailboat", "telescope", "unicorn", "violin", "windmill",
	"anchor", "butterfly", "cactus", "drum", "eagle", "flashlight",
	"giraffe", "helicopter", "iceberg", "juggler", "keyboard", "lantern",
	"magnet", "nest", "owl", "parachute", "quilt", "rocket",
	"scissors", "tornado", "ukulele", "vampire", "wheelbarrow", "yo-yo",
	"acorn", "beaver", "candle", "dinosaur", "earring", "fountain",
	"globe", "hedgehog", "iron", "jigsaw", "koala", "lobster",
}
