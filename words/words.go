// words/words.go
package words

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
)

// 抽词需要的最少词数
const minPoolSize = 3

var ErrPoolTooSmall = errors.New("word pool needs at least 3 distinct words")

// Pool 是一次性注入的候选词池。词在加载时统一转成大写并去重，
// 抽词不会消耗词池，跨回合同一个词可以重复出现。
type Pool struct {
	words []string
	index map[string]struct{}
	rng   *rand.Rand
	mutex sync.Mutex // 词池可被多个房间共用
}

// NewPool 构建词池，空白词被丢弃
func NewPool(candidates []string, seed int64) (*Pool, error) {
	p := &Pool{
		words: make([]string, 0, len(candidates)),
		index: make(map[string]struct{}, len(candidates)),
		rng:   rand.New(rand.NewSource(seed)),
	}

	for _, w := range candidates {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if _, dup := p.index[w]; dup {
			continue
		}
		p.index[w] = struct{}{}
		p.words = append(p.words, w)
	}

	if len(p.words) < minPoolSize {
		return nil, ErrPoolTooSmall
	}
	return p, nil
}

// NewDefaultPool 使用内置词表
func NewDefaultPool(seed int64) *Pool {
	p, err := NewPool(DefaultWords, seed)
	if err != nil {
		// 内置词表保证够大
		panic("words: default list invalid: " + err.Error())
	}
	return p
}

// Size 返回词池中不同词的数量
func (p *Pool) Size() int {
	return len(p.words)
}

// Contains 判断词是否在池中，输入先归一化
func (p *Pool) Contains(word string) bool {
	_, ok := p.index[Normalize(word)]
	return ok
}

// DrawThree 抽取3个互不相同的词。单次抽取内重复的会被丢弃重抽，
// 词池本身不变。
func (p *Pool) DrawThree() [3]string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	var out [3]string
	seen := make(map[string]struct{}, 3)

	for i := 0; i < 3; {
		w := p.words[p.rng.Intn(len(p.words))]
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out[i] = w
		i++
	}
	return out
}

// Normalize 规范词与猜测文本: 去首尾空白, 统一大写
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
