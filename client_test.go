package hydrex

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew_NoTransport(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no transport configured")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestNew_ElasticsearchWithoutAddress(t *testing.T) {
	cfg := &clientConfig{driver: "elasticsearch"}
	if _, err := createStore(cfg); err == nil {
		t.Fatal("expected error for elasticsearch without addresses")
	}
}

func TestNew_CustomTransportSkipsReadiness(t *testing.T) {
	c, err := New(WithTransport(&mockTransport{}), WithReadinessTimeout(time.Nanosecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.store != nil {
		t.Error("custom transport must not create a store")
	}
	c.Close()
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass").apply(cfg2)
	WithStandalone().apply(cfg2)
	WithKeyPrefix("app:").apply(cfg2)
	if cfg2.driver != "redis" || !cfg2.standalone || cfg2.keyPrefix != "app:" {
		t.Errorf("cfg2 = %+v", cfg2)
	}

	cfg3 := &clientConfig{}
	WithElasticsearch("http://a:9200", "http://b:9200").apply(cfg3)
	WithBasicAuth("elastic", "changeme").apply(cfg3)
	WithIndexPrefix("prod_").apply(cfg3)
	if cfg3.driver != "elasticsearch" || len(cfg3.addrs) != 2 {
		t.Errorf("cfg3 driver/addrs = %q/%v", cfg3.driver, cfg3.addrs)
	}
	if cfg3.username != "elastic" || cfg3.password != "changeme" || cfg3.indexPrefix != "prod_" {
		t.Errorf("cfg3 = %+v", cfg3)
	}

	cfg4 := &clientConfig{}
	WithElasticCloud("cloud:abc", "key").apply(cfg4)
	if cfg4.cloudID != "cloud:abc" || cfg4.apiKey != "key" {
		t.Errorf("cfg4 = %+v", cfg4)
	}
}

func TestMappingOptions_Order(t *testing.T) {
	c := newTestClient(&mockTransport{},
		WithMappings(
			MappingEntry{Index: "todo-archive", DomainKey: todoKey},
			MappingEntry{Index: "note", DomainKey: `App\Note`},
		),
	)

	entries := c.Registry().Entries()
	want := []string{"todo", "todo-archive", "note"}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Index != want[i] {
			t.Errorf("entries[%d].Index = %q, want %q", i, e.Index, want[i])
		}
	}
}

func TestClient_IndexNameFor(t *testing.T) {
	c := newTestClient(&mockTransport{})

	for _, key := range []string{todoKey, `\` + todoKey} {
		got, err := c.IndexNameFor(key)
		if err != nil {
			t.Fatalf("IndexNameFor(%q): %v", key, err)
		}
		if got != "todo" {
			t.Errorf("IndexNameFor(%q) = %q, want todo", key, got)
		}
	}

	_, err := c.IndexNameFor("OLA")
	var uce *UnmappedClassError
	if !errors.As(err, &uce) {
		t.Fatalf("expected *UnmappedClassError, got %v", err)
	}
	if uce.DomainKey != "OLA" {
		t.Errorf("DomainKey = %q, want OLA", uce.DomainKey)
	}
}

func TestClient_Ping(t *testing.T) {
	// Transports without Ping are assumed reachable.
	c := newTestClient(&mockTransport{})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	down := errors.New("connection refused")
	pc := newTestClient(&pingTransport{
		pingFn: func(context.Context) error { return down },
	})
	if err := pc.Ping(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected wrapped ping error, got %v", err)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_IndexFacadesAreIndependent(t *testing.T) {
	c := newTestClient(&mockTransport{})
	a, b := c.Index("todo"), c.Index("todo")
	if a == b {
		t.Fatal("Index must return a new facade per call")
	}
	if a.Builder() == b.Builder() {
		t.Error("facades must not share their cached builder")
	}
}

func TestClient_MissingFactories(t *testing.T) {
	c := newTestClient(&mockTransport{},
		WithMapping("todo_archive", todoKey),
		WithMapping("note", `App\Note`),
		WithMapping("note_archive", `\App\Note`),
		WithMapping("tag", `App\Tag`),
	)

	got := c.MissingFactories()
	want := []string{`App\Note`, `App\Tag`}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	if missing := newTestClient(&mockTransport{}).MissingFactories(); len(missing) != 0 {
		t.Errorf("expected none, got %v", missing)
	}
}
