// scoring/scoring.go
package scoring

// DrawerBonus 每个猜中者给画手的固定加分
const DrawerBonus = 50

// Policy 计算一次猜中的得分。rank 从1开始(第几个猜中)，
// secondsRemaining 为猜中时计时器剩余秒数。纯函数。
type Policy func(rank, secondsRemaining int) int

// 名次奖励: 第1名200, 第2名150, 第3名100, 之后50
var placementBonus = [...]int{200, 150, 100}

// PlacementSpeed 名次奖励加剩余时间奖励，默认策略
func PlacementSpeed(rank, secondsRemaining int) int {
	bonus := 50
	if rank >= 1 && rank <= len(placementBonus) {
		bonus = placementBonus[rank-1]
	}
	return bonus + secondsRemaining*2
}

// SpeedOnly 只看速度的备选策略，下限10分
func SpeedOnly(rank, secondsRemaining int) int {
	points := secondsRemaining * 5
	if points < 10 {
		return 10
	}
	return points
}

// ByName 按配置名取策略，未知名字退回默认策略
func ByName(name string) Policy {
	switch name {
	case "speed":
		return SpeedOnly
	case "placement_speed":
		return PlacementSpeed
	default:
		return PlacementSpeed
	}
}
