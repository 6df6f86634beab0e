package filterstate

import (
	"context"
	"errors"
	"log"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/rajivgeraev/dealer-api/internal/apiclient"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

// SearchErrorMessage показывается, когда поиск завершился ошибкой
const SearchErrorMessage = "Failed to load vehicles. Please try again."

// Searcher выполняет поиск по складу
type Searcher interface {
	Search(ctx context.Context, q url.Values) (models.ResultPage, error)
}

// IntentParser переводит свободный текст в фильтры
type IntentParser interface {
	ParseIntent(ctx context.Context, text string) (models.IntentResult, error)
}

// Tracker сохраняет события поиска для аналитики
type Tracker interface {
	TrackSearch(ctx context.Context, event models.SearchEvent) error
}

// Phase этап цикла поиска
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot копия состояния контроллера
type Snapshot struct {
	Filters FilterSet
	Sort    SortOption
	Page    int
	Phase   Phase

	// Результат последнего актуального поиска
	Result    models.ResultPage
	SearchErr string

	// Обратная связь по разбору свободного текста
	IntentMessage string
	IntentErr     string
}

// Controller единственный владелец состояния фильтров.
// Каждое изменение переписывает адрес без новой записи истории и запускает поиск.
// Ответ поиска применяется, только если его номер совпадает с последним выданным.
type Controller struct {
	searcher Searcher
	intents  IntentParser
	loc      Location

	mu      sync.Mutex
	state   Snapshot
	seq     uint64
	observe func(Snapshot)

	tracker   Tracker
	sessionID uuid.UUID
}

// Option настраивает Controller
type Option func(*Controller)

// WithObserver передает каждую смену состояния в fn
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.observe = fn
	}
}

// WithTracker отправляет каждый успешный поиск в t от имени сессии sessionID.
// Ошибки отправки только логируются.
func WithTracker(t Tracker, sessionID uuid.UUID) Option {
	return func(c *Controller) {
		c.tracker = t
		c.sessionID = sessionID
	}
}

// NewController создает контроллер. Состояние берется из адреса loc.
func NewController(searcher Searcher, intents IntentParser, loc Location, opts ...Option) *Controller {
	c := &Controller{
		searcher: searcher,
		intents:  intents,
		loc:      loc,
	}
	c.state.Filters, c.state.Sort, c.state.Page = Decode(loc.Query())
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot возвращает текущее состояние
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start выполняет первый поиск по состоянию из адреса
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.writeLocation()
	c.mu.Unlock()
	c.search(ctx)
}

// ApplyFilter меняет одно поле фильтра и возвращает к первой странице
func (c *Controller) ApplyFilter(ctx context.Context, field Field, value string) error {
	c.mu.Lock()
	next, err := c.state.Filters.With(field, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state.Filters = next
	c.state.Page = 1
	c.writeLocation()
	c.mu.Unlock()

	c.search(ctx)
	return nil
}

// SetSort меняет сортировку. Строка разбирается как ParseSortOption.
func (c *Controller) SetSort(ctx context.Context, option string) {
	c.mu.Lock()
	c.state.Sort = ParseSortOption(option)
	c.state.Page = 1
	c.writeLocation()
	c.mu.Unlock()

	c.search(ctx)
}

// SetPage переходит на страницу page (не меньше 1)
func (c *Controller) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	c.state.Page = max(page, 1)
	c.writeLocation()
	c.mu.Unlock()

	c.search(ctx)
}

// ResetFilters возвращает фильтры к значениям по умолчанию. Сортировка сохраняется.
func (c *Controller) ResetFilters(ctx context.Context) {
	c.mu.Lock()
	c.state.Filters = DefaultFilters()
	c.state.Page = 1
	c.writeLocation()
	c.mu.Unlock()

	c.search(ctx)
}

// SyncFromURL перечитывает состояние из адреса после навигации по истории.
// Возвращает false, если состояние совпадает с текущим и поиск не нужен.
func (c *Controller) SyncFromURL(ctx context.Context) bool {
	c.mu.Lock()
	filters, sort, page := Decode(c.loc.Query())
	if filters == c.state.Filters && sort == c.state.Sort && page == c.state.Page {
		c.mu.Unlock()
		return false
	}
	c.state.Filters, c.state.Sort, c.state.Page = filters, sort, page
	c.writeLocation()
	c.mu.Unlock()

	c.search(ctx)
	return true
}

// Retry повторяет поиск с текущим состоянием
func (c *Controller) Retry(ctx context.Context) {
	c.search(ctx)
}

// ApplyIntent разбирает свободный текст и накладывает результат на фильтры.
// Ошибка разбора сохраняется в IntentErr, фильтры при этом не меняются.
func (c *Controller) ApplyIntent(ctx context.Context, text string) {
	c.mu.Lock()
	c.state.IntentErr = ""
	c.state.IntentMessage = ""
	c.mu.Unlock()

	result, err := c.intents.ParseIntent(ctx, text)
	if err != nil {
		msg := IntentFailedMessage
		var apiErr *apiclient.APIError
		switch {
		case errors.Is(err, apiclient.ErrIntentNotUnderstood):
			msg = NotUnderstoodMessage
		case errors.As(err, &apiErr) && apiErr.Message != "":
			msg = apiErr.Message
		}
		log.Printf("Ошибка разбора запроса %q: %v", text, err)

		c.mu.Lock()
		c.state.IntentErr = msg
		snap := c.state
		c.mu.Unlock()
		c.notify(snap)
		return
	}

	c.mu.Lock()
	c.state.Filters = MergeIntent(c.state.Filters, result.ParsedFilters)
	c.state.Page = 1
	c.state.IntentMessage = FeedbackMessage(result.Confidence)
	c.writeLocation()
	c.mu.Unlock()

	c.search(ctx)
}

// DismissIntentError скрывает ошибку разбора
func (c *Controller) DismissIntentError() {
	c.mu.Lock()
	c.state.IntentErr = ""
	snap := c.state
	c.mu.Unlock()
	c.notify(snap)
}

// writeLocation записывает состояние в адрес. Вызывается под c.mu.
func (c *Controller) writeLocation() {
	c.loc.Replace(Encode(c.state.Filters, c.state.Sort, c.state.Page))
}

// notify передает наблюдателю снимки состояния по порядку.
// Вызывается без c.mu, поэтому наблюдатель может обращаться к контроллеру.
func (c *Controller) notify(snaps ...Snapshot) {
	if c.observe == nil {
		return
	}
	for _, s := range snaps {
		c.observe(s)
	}
}

// search выполняет один цикл поиска: idle → loading → success|error → idle.
// Блокировка снимается на время сетевого запроса.
func (c *Controller) search(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	q := Encode(c.state.Filters, c.state.Sort, c.state.Page)
	c.state.Phase = PhaseLoading
	loading := c.state
	c.mu.Unlock()
	c.notify(loading)

	result, err := c.searcher.Search(ctx, q)

	c.mu.Lock()
	if seq != c.seq {
		log.Printf("Отброшен устаревший ответ поиска #%d (актуальный #%d)", seq, c.seq)
		c.mu.Unlock()
		return
	}

	if err != nil {
		log.Printf("Ошибка поиска: %v", err)
		c.state.Result = models.ResultPage{Data: []models.Listing{}}
		c.state.SearchErr = SearchErrorMessage
		c.state.Phase = PhaseError
	} else {
		c.state.Result = result
		c.state.SearchErr = ""
		c.state.Phase = PhaseSuccess
	}
	done := c.state
	c.state.Phase = PhaseIdle
	idle := c.state
	filters := c.state.Filters
	c.mu.Unlock()

	c.notify(done)
	// Наблюдатель мог запустить новый поиск, тогда этот цикл уже устарел
	if !c.current(seq) {
		return
	}
	c.notify(idle)
	if err == nil {
		c.track(ctx, filters)
	}
}

func (c *Controller) current(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq == c.seq
}

// track отправляет событие поиска. Сбой аналитики не влияет на состояние поиска.
func (c *Controller) track(ctx context.Context, f FilterSet) {
	if c.tracker == nil {
		return
	}
	event := models.SearchEvent{
		SessionID: c.sessionID,
		Filters:   map[string]string{},
	}
	for key, values := range Encode(f, DefaultSort, 1) {
		if key == "sortBy" || key == "sortOrder" {
			continue
		}
		event.Filters[key] = values[0]
	}
	if err := c.tracker.TrackSearch(ctx, event); err != nil {
		log.Printf("⚠️ Не удалось сохранить событие поиска: %v", err)
	}
}
