package catalog

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/apresai/vidblueprint/internal/blueprint"
)

func newTestCatalog(t *testing.T) (*Catalog, *fakeDynamo, *fakeS3) {
	t.Helper()
	ddb := newFakeDynamo()
	obj := newFakeS3()
	c := New(NewStore(ddb, "blueprints-test"), NewStorage(obj, "bucket", "https://cdn.example.com/"), nil)

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return c, ddb, obj
}

func TestPublishGetFetch(t *testing.T) {
	c, ddb, obj := newTestCatalog(t)
	ctx := context.Background()
	bp := blueprint.Generate(blueprint.DefaultIdea)

	rec, err := c.Publish(ctx, &bp)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if rec.ObjectKey != "blueprints/"+rec.BlueprintID+".json" {
		t.Fatalf("ObjectKey: got=%q", rec.ObjectKey)
	}
	if rec.URL != "https://cdn.example.com/"+rec.ObjectKey {
		t.Fatalf("URL: got=%q", rec.URL)
	}
	if rec.SceneCount != 11 {
		t.Fatalf("SceneCount: want=%d got=%d", 11, rec.SceneCount)
	}
	if !reflect.DeepEqual(rec.MidRolls, []string{"01:30", "06:45", "12:00"}) {
		t.Fatalf("MidRolls: got=%v", rec.MidRolls)
	}
	if obj.types[rec.ObjectKey] != "application/json" {
		t.Fatalf("content type: got=%q", obj.types[rec.ObjectKey])
	}

	item := ddb.items["BLUEPRINT#"+rec.BlueprintID]
	if item == nil {
		t.Fatalf("no dynamodb item for %s", rec.BlueprintID)
	}
	if got := strAttr(item, "GSI1SK"); got != rec.CreatedAt+"#"+rec.BlueprintID {
		t.Fatalf("GSI1SK: got=%q", got)
	}
	if got := strAttr(item, "SK"); got != "METADATA" {
		t.Fatalf("SK: want=%q got=%q", "METADATA", got)
	}

	got, err := c.Get(ctx, rec.BlueprintID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Idea != bp.Idea {
		t.Fatalf("Idea: want=%q got=%q", bp.Idea, got.Idea)
	}

	fetched, _, err := c.Fetch(ctx, rec.BlueprintID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !reflect.DeepEqual(*fetched, bp) {
		t.Fatalf("fetched blueprint differs from published")
	}
}

func TestGetMissing(t *testing.T) {
	c, _, _ := newTestCatalog(t)
	_, err := c.Get(context.Background(), "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchMissingObject(t *testing.T) {
	c, _, obj := newTestCatalog(t)
	bp := blueprint.Generate("")
	rec, err := c.Publish(context.Background(), &bp)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	delete(obj.objects, rec.ObjectKey)

	_, _, err = c.Fetch(context.Background(), rec.BlueprintID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublishRollsBackObjectOnIndexFailure(t *testing.T) {
	c, ddb, obj := newTestCatalog(t)
	ddb.putErr = errPutFailed

	bp := blueprint.Generate("")
	_, err := c.Publish(context.Background(), &bp)
	if !errors.Is(err, errPutFailed) {
		t.Fatalf("expected put error, got %v", err)
	}
	if len(obj.objects) != 0 {
		t.Fatalf("orphaned objects left behind: %d", len(obj.objects))
	}
}

func TestListNewestFirstWithCursor(t *testing.T) {
	c, ddb, _ := newTestCatalog(t)
	ctx := context.Background()

	var ids []string
	for _, idea := range []string{"a dragon", "a robot", "a bunny"} {
		bp := blueprint.Generate(idea)
		rec, err := c.Publish(ctx, &bp)
		if err != nil {
			t.Fatalf("Publish(%q): %v", idea, err)
		}
		ids = append(ids, rec.BlueprintID)
	}

	page, cursor, err := c.List(ctx, 2, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 || page[0].BlueprintID != ids[2] || page[1].BlueprintID != ids[1] {
		t.Fatalf("first page: got=%v", recordIDs(page))
	}
	if cursor == "" {
		t.Fatalf("expected a cursor for the next page")
	}
	if *ddb.lastQry.IndexName != "GSI1" || *ddb.lastQry.ScanIndexForward {
		t.Fatalf("list should query GSI1 descending")
	}

	page, cursor, err = c.List(ctx, 2, cursor)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page) != 1 || page[0].BlueprintID != ids[0] {
		t.Fatalf("second page: got=%v", recordIDs(page))
	}
	if cursor != "" {
		t.Fatalf("expected no cursor after last page, got %q", cursor)
	}
}

func TestListRejectsBadCursor(t *testing.T) {
	c, _, _ := newTestCatalog(t)
	if _, _, err := c.List(context.Background(), 10, "no-separator"); err == nil {
		t.Fatalf("List: expected error, got nil")
	}
}

func TestListClampsLimit(t *testing.T) {
	c, ddb, _ := newTestCatalog(t)
	if _, _, err := c.List(context.Background(), 5000, ""); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := *ddb.lastQry.Limit; got != maxListLimit {
		t.Fatalf("Limit: want=%d got=%d", maxListLimit, got)
	}
}

func TestDelete(t *testing.T) {
	c, ddb, obj := newTestCatalog(t)
	bp := blueprint.Generate("")
	rec, err := c.Publish(context.Background(), &bp)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := c.Delete(context.Background(), rec.BlueprintID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(ddb.items) != 0 || len(obj.objects) != 0 {
		t.Fatalf("delete left items=%d objects=%d", len(ddb.items), len(obj.objects))
	}
}

func TestNewBlueprintIDSortsByTime(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a, err := NewBlueprintID(t1)
	if err != nil {
		t.Fatalf("NewBlueprintID: %v", err)
	}
	b, err := NewBlueprintID(t1.Add(time.Second))
	if err != nil {
		t.Fatalf("NewBlueprintID: %v", err)
	}
	if len(a) != 26 || !(a < b) {
		t.Fatalf("ids should be 26-char and time ordered: %q %q", a, b)
	}
	if strings.ToUpper(a) != a {
		t.Fatalf("ulid should be upper-case Crockford base32: %q", a)
	}
}

func recordIDs(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.BlueprintID
	}
	return out
}
