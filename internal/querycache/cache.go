// Package querycache кэширует серверное состояние с инвалидацией по тегам.
//
// Каждая запись адресуется тройкой (область, тег, ключ). Область выводится из
// токена бэкенда в контексте: пользователи не видят ответов, полученных чужим
// токеном. Мутации после успешного ответа бэкенда вызывают Invalidate с
// перечнем тегов: записи всех областей помечаются устаревшими, записи с
// подписчиками сразу перезапрашиваются в фоне с токеном своей области,
// остальные при следующем чтении. Значения общие для читателей одной
// области, менять их нельзя.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/reqctx"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Tag string

const (
	TagColleges      Tag = "Colleges"
	TagSingleCollege Tag = "SINGLE_COLLEGE"
	TagTabs          Tag = "Tabs"
	TagSections      Tag = "Sections"
	TagNotices       Tag = "Notices"
	TagFestivals     Tag = "Festivals"
	TagHighlights    Tag = "Highlights"
	TagPages         Tag = "Pages"
)

type fetchFunc func(ctx context.Context) (any, error)

type entryKey struct {
	scope string
	tag   Tag
	key   string
}

type entry struct {
	value     any
	has       bool
	valueGen  uint64
	fetchedAt time.Time
	stale     bool
	gen       uint64
	fetch     fetchFunc
	fetchCtx  context.Context
	subs      map[uint64]func(any)

	// pub упорядочивает запись значения и рассылку подписчикам
	pub sync.Mutex
}

// Scope возвращает область кэша для токена из ctx: префикс sha256 токена
// или "" для анонимного запроса. Сам токен в ключах не хранится.
func Scope(ctx context.Context) string {
	token := reqctx.Token(ctx)
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:12])
}

func keyFor(ctx context.Context, tag Tag, key string) entryKey {
	return entryKey{scope: Scope(ctx), tag: tag, key: key}
}

type Cache struct {
	mu      sync.Mutex
	entries map[entryKey]*entry
	nextSub uint64

	group singleflight.Group
	ttl   time.Duration
	now   func() time.Time

	wg sync.WaitGroup
}

// New создаёт кэш. ttl <= 0 — записи не устаревают сами, только по Invalidate.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[entryKey]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache) entryLocked(k entryKey) *entry {
	e, ok := c.entries[k]
	if !ok {
		e = &entry{subs: make(map[uint64]func(any))}
		c.entries[k] = e
	}
	return e
}

func (c *Cache) freshLocked(e *entry) bool {
	if !e.has || e.stale {
		return false
	}
	return c.ttl <= 0 || c.now().Sub(e.fetchedAt) < c.ttl
}

// Query возвращает свежее значение из кэша или запрашивает его через fetch.
// Одинаковые одновременные запросы одной области склеиваются в один.
func Query[T any](ctx context.Context, c *Cache, tag Tag, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	k := keyFor(ctx, tag, key)
	ff := func(ctx context.Context) (any, error) { return fetch(ctx) }

	c.mu.Lock()
	e := c.entryLocked(k)
	e.fetch = ff
	e.fetchCtx = context.WithoutCancel(ctx)
	if c.freshLocked(e) {
		v := e.value
		c.mu.Unlock()
		return v.(T), nil
	}
	c.mu.Unlock()

	v, err := c.load(ctx, k, ff)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// load выполняет fetch и сохраняет результат. Ключ singleflight включает
// поколение записи. Результат поколения старше уже сохранённого
// отбрасывается: ни запись, ни подписчики его не увидят, а вызывающий
// получит сохранённое значение.
func (c *Cache) load(ctx context.Context, k entryKey, fetch fetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(k)
	gen := e.gen
	c.mu.Unlock()

	sfKey := fmt.Sprintf("%s|%s|%s|%d", k.scope, k.tag, k.key, gen)
	v, err, _ := c.group.Do(sfKey, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		e.pub.Lock()
		defer e.pub.Unlock()

		c.mu.Lock()
		if e.has && e.valueGen > gen {
			newer := e.value
			c.mu.Unlock()
			logger.WithCtx(ctx).Debug("Кэш: отброшен устаревший ответ",
				zap.String("tag", string(k.tag)),
				zap.String("key", k.key),
			)
			return newer, nil
		}
		e.value = v
		e.has = true
		e.valueGen = gen
		e.fetchedAt = c.now()
		e.stale = e.gen != gen
		subs := make([]func(any), 0, len(e.subs))
		for _, fn := range e.subs {
			subs = append(subs, fn)
		}
		c.mu.Unlock()

		for _, fn := range subs {
			fn(v)
		}
		return v, nil
	})
	return v, err
}

// Subscribe регистрирует получателя новых значений записи (тег, ключ) в
// области ctx. Возвращает функцию отписки.
func Subscribe[T any](ctx context.Context, c *Cache, tag Tag, key string, fn func(T)) (unsubscribe func()) {
	k := keyFor(ctx, tag, key)

	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.entryLocked(k).subs[id] = func(v any) {
		if t, ok := v.(T); ok {
			fn(t)
		}
	}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		if e, ok := c.entries[k]; ok {
			delete(e.subs, id)
		}
		c.mu.Unlock()
	}
}

// Invalidate помечает устаревшими все записи с указанными тегами во всех
// областях. Записи с подписчиками перезапрашиваются в фоне с контекстом
// последнего чтения своей области, отвязанным от отмены.
func (c *Cache) Invalidate(ctx context.Context, tags ...Tag) {
	if len(tags) == 0 {
		return
	}
	set := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}

	type job struct {
		k     entryKey
		ctx   context.Context
		fetch fetchFunc
	}
	var jobs []job

	c.mu.Lock()
	for k, e := range c.entries {
		if _, ok := set[k.tag]; !ok {
			continue
		}
		e.stale = true
		e.gen++
		if len(e.subs) > 0 && e.fetch != nil && e.fetchCtx != nil {
			jobs = append(jobs, job{k: k, ctx: e.fetchCtx, fetch: e.fetch})
		}
	}
	c.mu.Unlock()

	logger.WithCtx(ctx).Debug("Кэш: инвалидация",
		zap.Any("tags", tags),
		zap.Int("refetch", len(jobs)),
	)

	for _, j := range jobs {
		c.wg.Add(1)
		go func(j job) {
			defer c.wg.Done()
			if _, err := c.load(j.ctx, j.k, j.fetch); err != nil {
				logger.WithCtx(j.ctx).Warn("Кэш: ошибка фонового обновления",
					zap.String("tag", string(j.k.tag)),
					zap.String("key", j.k.key),
					zap.Error(err),
				)
			}
		}(j)
	}
}

// Wait блокируется до завершения всех фоновых обновлений.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Len возвращает число записей, для диагностики.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
