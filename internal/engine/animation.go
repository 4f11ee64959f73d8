package engine

import (
	"container/heap"
	"time"

	"github.com/gridbugs/gws/internal/domain"
)

// animationStep выполняет очередную стадию анимации.
// Возвращает задержку до следующей стадии и false, если анимация закончилась.
type animationStep func() (time.Duration, bool)

// AnimationItem обертка для элемента очереди анимаций
type AnimationItem struct {
	Kind  domain.AnimationKind
	Due   time.Duration // Момент на часах симуляции, когда сработает стадия
	Seq   uint64        // Порядок постановки (для равных Due)
	Index int           // Индекс в куче (нужен для update)

	step animationStep
}

// AnimationQueue реализует heap.Interface и хранит AnimationItems
type AnimationQueue []*AnimationItem

func (pq AnimationQueue) Len() int { return len(pq) }

func (pq AnimationQueue) Less(i, j int) bool {
	// MinHeap по времени, затем по порядку постановки
	if pq[i].Due != pq[j].Due {
		return pq[i].Due < pq[j].Due
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq AnimationQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *AnimationQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*AnimationItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *AnimationQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update переносит стадию на новое время
func (pq *AnimationQueue) Update(item *AnimationItem, due time.Duration) {
	item.Due = due
	heap.Fix(pq, item.Index)
}

// Peek возвращает ближайшую стадию без извлечения
func (pq AnimationQueue) Peek() *AnimationItem {
	if len(pq) == 0 {
		return nil
	}
	return pq[0]
}

// animator - часы анимаций. Время идёт только через Advance.
type animator struct {
	queue AnimationQueue
	clock time.Duration
	seq   uint64
}

func newAnimator() *animator {
	a := &animator{queue: make(AnimationQueue, 0)}
	heap.Init(&a.queue)
	return a
}

// schedule ставит анимацию, первая стадия сработает через delay.
func (a *animator) schedule(kind domain.AnimationKind, delay time.Duration, step animationStep) {
	a.seq++
	heap.Push(&a.queue, &AnimationItem{
		Kind: kind,
		Due:  a.clock + delay,
		Seq:  a.seq,
		step: step,
	})
}

// Advance двигает часы на period и выполняет все созревшие стадии.
// Стадия, запланированная с нулевой задержкой, срабатывает в том же вызове.
func (a *animator) Advance(period time.Duration) int {
	a.clock += period
	fired := 0
	for {
		item := a.queue.Peek()
		if item == nil || item.Due > a.clock {
			return fired
		}
		fired++
		delay, again := item.step()
		if !again {
			heap.Pop(&a.queue)
			continue
		}
		a.queue.Update(item, item.Due+delay)
	}
}

// Flush доигрывает все анимации до конца, не трогая часы.
func (a *animator) Flush() {
	for a.queue.Len() > 0 {
		item := a.queue.Peek()
		if _, again := item.step(); !again {
			heap.Pop(&a.queue)
		} else {
			// Порядок стадий внутри одной анимации сохраняется
			a.queue.Update(item, item.Due)
		}
	}
}

func (a *animator) Len() int {
	return a.queue.Len()
}

func (a *animator) Clock() time.Duration {
	return a.clock
}
