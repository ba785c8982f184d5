// README: Glass-prompt queue; sequential prompts before a cart finalises.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/types"
)

var (
	ErrUnknownItem = errors.New("unknown menu item")
	ErrNoPrompt    = errors.New("no prompt pending")
)

// Resolver maps an item id to its drink definition.
type Resolver func(id types.ID) (*menu.Drink, bool)

// Item is one requested cart position before resolution.
type Item struct {
	ItemID   types.ID
	Quantity int
}

type pending struct {
	drink    *menu.Drink
	quantity int
}

// Queue walks a cart through its supplementary-glass prompts. Items whose
// drink needs no prompt are committed immediately; the rest are prompted
// one at a time in submission order. Each item reaches the cart exactly
// once no matter how the prompt is answered.
type Queue struct {
	mu      sync.Mutex
	resolve Resolver
	waiting []pending
	current *pending
	lines   []order.Line
}

func New(resolve Resolver) *Queue {
	return &Queue{resolve: resolve}
}

// Enqueue partitions items into prompt-free and prompt-needed ones. If the
// queue was idle and a prompt-needed item arrived, prompting starts with
// the head item.
func (q *Queue) Enqueue(items []Item) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		drink, ok := q.resolve(it.ItemID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownItem, it.ItemID)
		}
		p := pending{drink: drink, quantity: it.Quantity}
		if !drink.RequiresGlassPrompt {
			q.commit(p, 0)
			continue
		}
		q.waiting = append(q.waiting, p)
	}
	if q.current == nil {
		q.advance()
	}
	return nil
}

// Current returns the drink and quantity being prompted for, if any.
func (q *Queue) Current() (*menu.Drink, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return nil, 0, false
	}
	return q.current.drink, q.current.quantity, true
}

// Confirm resolves the current prompt with the number of supplementary
// glasses and advances to the next queued item.
func (q *Queue) Confirm(glasses int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return ErrNoPrompt
	}
	if glasses < 0 {
		glasses = 0
	}
	q.commit(*q.current, glasses)
	q.current = nil
	q.advance()
	return nil
}

// Cancel dismisses the current prompt. The base item is still committed,
// just without glasses.
func (q *Queue) Cancel() error {
	return q.Confirm(0)
}

// Idle reports whether no prompt is shown and none is queued.
func (q *Queue) Idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current == nil && len(q.waiting) == 0
}

// Lines returns the committed cart so far.
func (q *Queue) Lines() []order.Line {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]order.Line, len(q.lines))
	copy(out, q.lines)
	return out
}

// commit appends the base line and, when glasses were requested, a
// zero-price empty-glass line. Callers hold the mutex.
func (q *Queue) commit(p pending, glasses int) {
	q.lines = append(q.lines, order.Line{
		Name:      p.drink.Name,
		UnitPrice: p.drink.Price,
		Quantity:  p.quantity,
	})
	if glasses > 0 {
		q.lines = append(q.lines, order.Line{
			Name:      GlassLineName(p.drink.GlassType),
			UnitPrice: types.EUR(0),
			Quantity:  glasses,
		})
	}
}

// advance moves the head of the waiting queue into the prompt slot.
// Callers hold the mutex.
func (q *Queue) advance() {
	if len(q.waiting) == 0 {
		return
	}
	head := q.waiting[0]
	q.waiting = q.waiting[1:]
	q.current = &head
}

// GlassLineName is the synthetic line item added for supplementary glasses.
func GlassLineName(glassType string) string {
	if glassType == "" {
		return "Empty glass"
	}
	return fmt.Sprintf("Empty glass (%s)", glassType)
}
