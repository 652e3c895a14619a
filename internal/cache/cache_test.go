package cache_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/saasrevops/revenue-gateway/internal/cache"
)

func TestCache(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cache Suite")
}

var _ = Describe("Key", func() {
	It("should return the bare resource when there are no parameters", func() {
		Expect(cache.Key("admin.roles")).To(Equal("admin.roles"))
	})

	It("should join parameters so prefix invalidation can match them", func() {
		Expect(cache.Key("admin.roles", "list")).To(Equal("admin.roles|list"))
		Expect(cache.Key("revenue.quotes", "detail", "q-1")).To(Equal("revenue.quotes|detail|q-1"))
	})
})

var _ = Describe("Store", func() {
	var (
		store *cache.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		store = cache.NewStore(128, time.Minute)
		ctx = context.Background()
	})

	Describe("GetOrFetch", func() {
		It("should fetch on miss and serve from cache afterwards", func() {
			calls := 0
			fetch := func(ctx context.Context) (interface{}, error) {
				calls++
				return "value", nil
			}

			first, err := store.GetOrFetch(ctx, "k", fetch)
			Expect(err).ToNot(HaveOccurred())
			Expect(first).To(Equal("value"))

			second, err := store.GetOrFetch(ctx, "k", fetch)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(Equal("value"))
			Expect(calls).To(Equal(1))
		})

		It("should not cache a failed fetch", func() {
			calls := 0
			failing := func(ctx context.Context) (interface{}, error) {
				calls++
				return nil, errors.New("upstream down")
			}

			_, err := store.GetOrFetch(ctx, "k", failing)
			Expect(err).To(HaveOccurred())

			_, err = store.GetOrFetch(ctx, "k", failing)
			Expect(err).To(HaveOccurred())
			Expect(calls).To(Equal(2))
		})

		It("should collapse concurrent fetches of the same key", func() {
			var mu sync.Mutex
			calls := 0
			release := make(chan struct{})
			fetch := func(ctx context.Context) (interface{}, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				<-release
				return "shared", nil
			}

			var wg sync.WaitGroup
			results := make([]interface{}, 10)
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					val, err := store.GetOrFetch(ctx, "hot-key", fetch)
					Expect(err).ToNot(HaveOccurred())
					results[i] = val
				}(i)
			}

			// let the goroutines pile onto the flight before releasing it
			time.Sleep(50 * time.Millisecond)
			close(release)
			wg.Wait()

			mu.Lock()
			Expect(calls).To(Equal(1))
			mu.Unlock()
			for _, val := range results {
				Expect(val).To(Equal("shared"))
			}
		})
	})

	Describe("Invalidate", func() {
		It("should remove exact keys only", func() {
			store.Put("a|list", 1)
			store.Put("a|detail|x", 2)

			store.Invalidate("a|list")

			_, ok := store.Get("a|list")
			Expect(ok).To(BeFalse())
			_, ok = store.Get("a|detail|x")
			Expect(ok).To(BeTrue())
		})
	})

	Describe("InvalidatePrefix", func() {
		It("should drop every filtered variant of a list", func() {
			store.Put("admin.roles|list", 1)
			store.Put("admin.roles|list|admin", 2)
			store.Put("admin.roles|detail|r-1", 3)
			store.Put("admin.user_roles|list", 4)

			store.InvalidatePrefix("admin.roles|list")

			_, ok := store.Get("admin.roles|list")
			Expect(ok).To(BeFalse())
			_, ok = store.Get("admin.roles|list|admin")
			Expect(ok).To(BeFalse())
			_, ok = store.Get("admin.roles|detail|r-1")
			Expect(ok).To(BeTrue())
			_, ok = store.Get("admin.user_roles|list")
			Expect(ok).To(BeTrue())
		})
	})

	Describe("Fetch", func() {
		It("should return the typed value", func() {
			val, err := cache.Fetch(ctx, store, "typed", func(ctx context.Context) ([]string, error) {
				return []string{"a", "b"}, nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(val).To(Equal([]string{"a", "b"}))
		})

		It("should propagate fetch errors", func() {
			_, err := cache.Fetch(ctx, store, "typed-err", func(ctx context.Context) ([]string, error) {
				return nil, errors.New("boom")
			})
			Expect(err).To(HaveOccurred())
		})

		It("should report a key holding a different type and drop the entry", func() {
			store.Put("collided", "not a slice")

			_, err := cache.Fetch(ctx, store, "collided", func(ctx context.Context) ([]string, error) {
				return []string{"a"}, nil
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("collided"))

			// the bad entry is gone, so the next fetch repopulates it
			val, err := cache.Fetch(ctx, store, "collided", func(ctx context.Context) ([]string, error) {
				return []string{"a"}, nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(val).To(Equal([]string{"a"}))
		})
	})
})

var _ = Describe("Bus", func() {
	var (
		bus *cache.Bus
		ctx context.Context
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = cache.NewBus(logger)
		ctx = context.Background()
	})

	It("should run every subscribed handler before Publish returns", func() {
		var seen []string
		bus.Subscribe("role.deleted", func(ctx context.Context, ev cache.Event) {
			seen = append(seen, "first:"+ev.ResourceID)
		})
		bus.Subscribe("role.deleted", func(ctx context.Context, ev cache.Event) {
			seen = append(seen, "second:"+ev.ResourceID)
		})

		bus.Publish(ctx, cache.Event{Type: "role.deleted", ResourceID: "r-1"})

		Expect(seen).To(Equal([]string{"first:r-1", "second:r-1"}))
	})

	It("should not call handlers for other event types", func() {
		called := false
		bus.Subscribe("role.created", func(ctx context.Context, ev cache.Event) {
			called = true
		})

		bus.Publish(ctx, cache.Event{Type: "role.deleted", ResourceID: "r-1"})

		Expect(called).To(BeFalse())
	})

	It("should tolerate publishing with no subscribers", func() {
		Expect(func() {
			bus.Publish(ctx, cache.Event{Type: "nobody.listens"})
		}).ToNot(Panic())
	})
})
