package repository

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/restaurants/internal/domain/model"
	"github.com/okian/restaurants/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// openTestDB opens a migrated in-memory sqlite database.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestParseDialect(t *testing.T) {
	cases := map[string]Dialect{
		"postgres":   Postgres,
		"PostgreSQL": Postgres,
		"sqlite":     SQLite,
		" sqlite3 ":  SQLite,
	}
	for in, want := range cases {
		got, err := ParseDialect(in)
		if err != nil {
			t.Fatalf("ParseDialect(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseDialect(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseDialect("mysql"); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRebind(t *testing.T) {
	q := `UPDATE menu_items SET name = ?, price = ? WHERE id = ? AND restaurant_id = ?`

	if got := SQLite.Rebind(q); got != q {
		t.Errorf("sqlite rebind changed the query: %s", got)
	}
	want := `UPDATE menu_items SET name = $1, price = $2 WHERE id = $3 AND restaurant_id = $4`
	if got := Postgres.Rebind(q); got != want {
		t.Errorf("postgres rebind = %s, want %s", got, want)
	}
}

func TestOpen_UnknownDriverIsConnectError(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("expected ErrConnect, got %v", err)
	}
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver in chain, got %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestRestaurants_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewRestaurants(db)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}

	created, err := store.Create(ctx, "Pasta Place", "Main St")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected first id 1, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set by storage")
	}
	if time.Since(created.CreatedAt) > time.Hour {
		t.Errorf("created_at looks wrong: %v", created.CreatedAt)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Errorf("get = %#v, want %#v", got, created)
	}

	got.Name = "Pasta Palace"
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if updated.Name != "Pasta Palace" || updated.Location != "Main St" {
		t.Errorf("unexpected row after update: %#v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	if _, err := store.Create(ctx, "Second", "Elm St"); err != nil {
		t.Fatalf("create second: %v", err)
	}
	list, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Errorf("unexpected list order: %#v", list)
	}

	if _, err := store.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMenuItems_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewMenuItems(db)

	item, err := store.Create(ctx, model.MenuItem{RestaurantID: 1, Name: "Spaghetti", Description: "Classic", Price: 9.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == 0 || item.RestaurantID != 1 {
		t.Fatalf("unexpected created item: %#v", item)
	}

	if _, err := store.Get(ctx, 2, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected lookup under another restaurant to miss, got %v", err)
	}

	item.Price = 11.25
	item.Description = ""
	updated, err := store.Update(ctx, item)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != item {
		t.Errorf("update = %#v, want %#v", updated, item)
	}
	got, err := store.Get(ctx, 1, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != item {
		t.Errorf("get = %#v, want %#v", got, item)
	}

	if _, err := store.Update(ctx, model.MenuItem{ID: item.ID, RestaurantID: 2, Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected scoped update to miss, got %v", err)
	}

	if err := store.Delete(ctx, 2, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected scoped delete to miss, got %v", err)
	}
	if err := store.Delete(ctx, 1, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, 1, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected second delete to miss, got %v", err)
	}
}

func TestMenuItems_PriceStoredInCents(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewMenuItems(db)

	item, err := store.Create(ctx, model.MenuItem{RestaurantID: 1, Name: "Soup", Description: "Hot", Price: 4.125})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.Get(ctx, 1, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Price != got.Price {
		t.Errorf("create returned price %v, stored %v", item.Price, got.Price)
	}
	if math.Abs(got.Price-4.13) > 1e-9 {
		t.Errorf("stored price = %v, want 4.13", got.Price)
	}

	item.Price = 2.375
	updated, err := store.Update(ctx, item)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _ := store.Get(ctx, 1, item.ID); got.Price != updated.Price {
		t.Errorf("update returned price %v, stored %v", updated.Price, got.Price)
	}
}

func TestRestaurants_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	restaurants := NewRestaurants(db)
	menu := NewMenuItems(db)

	owner, err := restaurants.Create(ctx, "Owner", "A")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	other, err := restaurants.Create(ctx, "Other", "B")
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := menu.Create(ctx, model.MenuItem{RestaurantID: owner.ID, Name: "dish", Price: 1}); err != nil {
			t.Fatalf("create item: %v", err)
		}
	}
	if _, err := menu.Create(ctx, model.MenuItem{RestaurantID: other.ID, Name: "keep", Price: 2}); err != nil {
		t.Fatalf("create other item: %v", err)
	}

	n, err := restaurants.Delete(ctx, owner.ID, menu.DeleteAllByRestaurantID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cascaded items, got %d", n)
	}

	left, err := menu.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("expected no orphaned items, got %d", len(left))
	}
	kept, err := menu.List(ctx, other.ID)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("expected other restaurant's item to survive, got %d", len(kept))
	}

	if _, err := restaurants.Delete(ctx, owner.ID, menu.DeleteAllByRestaurantID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRestaurants_DeleteRollsBackOnCascadeFailure(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	restaurants := NewRestaurants(db)
	menu := NewMenuItems(db)

	owner, err := restaurants.Create(ctx, "Owner", "A")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := menu.Create(ctx, model.MenuItem{RestaurantID: owner.ID, Name: "dish", Price: 1}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	boom := errors.New("boom")
	_, err = restaurants.Delete(ctx, owner.ID, func(context.Context, Querier, int64) (int64, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected cascade error, got %v", err)
	}

	if _, err := restaurants.Get(ctx, owner.ID); err != nil {
		t.Errorf("restaurant should survive a failed cascade: %v", err)
	}
	items, err := menu.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected menu item to survive, got %d", len(items))
	}
}

func TestTimestampScan(t *testing.T) {
	var got time.Time
	ts := timestamp{&got}

	inputs := []any{
		"2024-05-01 12:30:00",
		[]byte("2024-05-01T12:30:00Z"),
		time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
	}
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	for _, in := range inputs {
		if err := ts.Scan(in); err != nil {
			t.Fatalf("scan %v: %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("scan %v = %v, want %v", in, got, want)
		}
	}

	if err := ts.Scan(42); err == nil {
		t.Error("expected error for integer source")
	}
	if err := ts.Scan("yesterday"); err == nil {
		t.Error("expected error for unparseable text")
	}
}
