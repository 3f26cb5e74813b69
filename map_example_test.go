package expiringmap_test

import (
	"fmt"
	"time"

	expiringmap "github.com/aicacia/go-expiring-map"
	"github.com/aicacia/go-expiring-map/expiration"
)

func ExampleNew() {
	m, err := expiringmap.New[string, int](time.Minute)
	if err != nil {
		panic(err)
	}

	m.Set("answer", 42)

	value, ok := m.Get("answer")
	fmt.Println(value, ok)
	// Output: 42 true
}

func ExampleNew_options() {
	// Create a map with custom options
	m, err := expiringmap.New[string, string](time.Minute,
		expiringmap.WithLazyEviction[string, string](),
		expiringmap.WithExpirationHandler[string, string](func(key, value string) {
			fmt.Printf("expired: %s=%s\n", key, value)
		}),
		expiringmap.WithExpirationPolicy[string, string](expiration.General{}),
		expiringmap.WithCloner[string, string](expiringmap.NopValueCloner[string]{}),
	)
	if err != nil {
		panic(err)
	}

	_ = m
}

func ExampleWithLazyEviction() {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := expiringmap.ClockFunc(func() time.Time { return now })

	m, err := expiringmap.New[string, string](100*time.Millisecond,
		expiringmap.WithLazyEviction[string, string](),
		expiringmap.WithClock[string, string](clock),
		expiringmap.WithExpirationHandler[string, string](func(key, value string) {
			fmt.Printf("expired: %s=%s\n", key, value)
		}),
	)
	if err != nil {
		panic(err)
	}

	m.Set("greeting", "hello")

	// Nothing is evicted until the entry is accessed past its deadline.
	now = now.Add(150 * time.Millisecond)
	_, ok := m.Get("greeting")
	fmt.Println(ok)
	// Output:
	// expired: greeting=hello
	// false
}

func ExampleMap_All() {
	m, err := expiringmap.New[string, int](time.Minute)
	if err != nil {
		panic(err)
	}

	m.Set("a", 1).Set("b", 2).Set("c", 3)

	for key, value := range m.All() {
		fmt.Println(key, value)
	}
	// Output:
	// a 1
	// b 2
	// c 3
}

func ExampleMap_ForEach() {
	m, err := expiringmap.New[string, int](time.Minute)
	if err != nil {
		panic(err)
	}

	m.Set("x", 10)
	m.Set("y", 20)

	m.ForEach(func(key string, value int) {
		fmt.Printf("%s=%d\n", key, value)
	})
	// Output:
	// x=10
	// y=20
}
