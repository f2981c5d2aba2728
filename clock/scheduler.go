// clock/scheduler.go
package clock

import (
	"container/heap"
	"sync"
	"time"
)

type scheduledTask struct {
	id      int64
	execute time.Time
	fn      func()
	index   int
}

type taskQueue []*scheduledTask

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].execute.Before(q[j].execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*scheduledTask)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Scheduler 管理可取消的一次性延迟任务(幕间延迟、结算延迟等)。
// 到期回调在独立goroutine执行。
type Scheduler struct {
	queue  taskQueue
	mutex  sync.Mutex
	nextID int64
	stop   chan struct{}
	once   sync.Once
}

func NewScheduler() *Scheduler {
	s := &Scheduler{
		queue:  make(taskQueue, 0),
		nextID: 1,
		stop:   make(chan struct{}),
	}
	heap.Init(&s.queue)
	go s.process()
	return s
}

// After 注册延迟任务，返回可用于取消的ID
func (s *Scheduler) After(delay time.Duration, fn func()) int64 {
	id := s.Reserve()
	s.Schedule(id, delay, fn)
	return id
}

// Reserve 预留一个任务ID。调用方需要在回调里引用自己的ID时，
// 先预留再 Schedule，保证ID在任务可能触发之前就已确定。
func (s *Scheduler) Reserve() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextID
	s.nextID++
	return id
}

// Schedule 用预留的ID注册延迟任务
func (s *Scheduler) Schedule(id int64, delay time.Duration, fn func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	heap.Push(&s.queue, &scheduledTask{
		id:      id,
		execute: time.Now().Add(delay),
		fn:      fn,
	})
}

// Cancel 取消尚未到期的任务。已触发的任务取消无效。
func (s *Scheduler) Cancel(taskID int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, task := range s.queue {
		if task.id == taskID {
			heap.Remove(&s.queue, i)
			break
		}
	}
}

// Stop 关闭调度循环，未到期的任务不再触发
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.stop)
	})
}

func (s *Scheduler) process() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			var due []*scheduledTask

			s.mutex.Lock()
			for s.queue.Len() > 0 {
				task := s.queue[0]
				if task.execute.After(now) {
					break
				}
				heap.Pop(&s.queue)
				due = append(due, task)
			}
			s.mutex.Unlock()

			for _, task := range due {
				go task.fn()
			}

		case <-s.stop:
			return
		}
	}
}
