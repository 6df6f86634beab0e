package filterstate

import (
	"net/url"
	"sync"
)

// Location адрес страницы поиска с историей навигации
type Location interface {
	// Query возвращает параметры текущей записи истории
	Query() url.Values
	// Replace заменяет параметры текущей записи, не создавая новую
	Replace(q url.Values)
}

// MemoryLocation история навигации в памяти, аналог истории браузера
type MemoryLocation struct {
	mu      sync.Mutex
	path    string
	entries []url.Values
	index   int
}

// NewMemoryLocation создает историю с одной записью
func NewMemoryLocation(path string, initial url.Values) *MemoryLocation {
	return &MemoryLocation{
		path:    path,
		entries: []url.Values{cloneValues(initial)},
	}
}

// ParseLocation создает историю из ссылки вида "/inventory?make=BMW"
func ParseLocation(rawURL string) (*MemoryLocation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return NewMemoryLocation(u.Path, u.Query()), nil
}

func (l *MemoryLocation) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.entries[l.index])
}

func (l *MemoryLocation) Replace(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.index] = cloneValues(q)
}

// Push добавляет новую запись и отбрасывает записи «вперед»
func (l *MemoryLocation) Push(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries[:l.index+1], cloneValues(q))
	l.index++
}

// Back переходит на предыдущую запись. false, если ее нет.
func (l *MemoryLocation) Back() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index == 0 {
		return false
	}
	l.index--
	return true
}

// Forward переходит на следующую запись. false, если ее нет.
func (l *MemoryLocation) Forward() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index == len(l.entries)-1 {
		return false
	}
	l.index++
	return true
}

// Len возвращает число записей истории
func (l *MemoryLocation) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// String возвращает путь с параметрами текущей записи
func (l *MemoryLocation) String() string {
	q := l.Query()
	if len(q) == 0 {
		return l.path
	}
	return l.path + "?" + q.Encode()
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
