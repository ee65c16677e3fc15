package handler

import "sync"

// inflight отслеживает выполняющиеся операции по сессиям. Повторный
// запрос той же операции до завершения первой отклоняется, так что
// двойное нажатие «Оформить» или «Удалить» не порождает второй запрос
// к биллингу.
type inflight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{active: make(map[string]struct{})}
}

// begin регистрирует операцию; false — такая операция уже выполняется
func (f *inflight) begin(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.active[key]; busy {
		return false
	}
	f.active[key] = struct{}{}
	return true
}

func (f *inflight) end(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, key)
}
