package listing

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterDoc(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	t.Run("empty filter matches everything", func(t *testing.T) {
		doc := searchFilterDoc(SearchFilter{})
		if len(doc) != 0 {
			t.Fatalf("expected empty document, got %v", doc)
		}
	})

	t.Run("all filters anded", func(t *testing.T) {
		doc := searchFilterDoc(SearchFilter{
			PriceMin:      f(500),
			PriceMax:      f(1000),
			RoomSize:      "800 sqft",
			NameSubstring: "loft",
		})
		if len(doc) != 3 {
			t.Fatalf("expected 3 clauses, got %d: %v", len(doc), doc)
		}

		name := findClause(t, doc, "name")
		re, ok := name[0].Value.(primitive.Regex)
		if !ok || re.Pattern != "loft" || re.Options != "i" {
			t.Fatalf("unexpected name clause: %v", name)
		}

		rent := findClause(t, doc, "rent_per_month")
		if rent[0].Key != "$gte" || rent[0].Value != 500.0 {
			t.Fatalf("unexpected lower bound: %v", rent)
		}
		if rent[1].Key != "$lte" || rent[1].Value != 1000.0 {
			t.Fatalf("unexpected upper bound: %v", rent)
		}
	})

	t.Run("regex metacharacters quoted", func(t *testing.T) {
		doc := searchFilterDoc(SearchFilter{NameSubstring: "loft (2br)"})
		name := findClause(t, doc, "name")
		re := name[0].Value.(primitive.Regex)
		if re.Pattern == "loft (2br)" {
			t.Fatalf("expected quoted pattern, got %q", re.Pattern)
		}
	})

	t.Run("lower bound only", func(t *testing.T) {
		doc := searchFilterDoc(SearchFilter{PriceMin: f(700)})
		rent := findClause(t, doc, "rent_per_month")
		if len(rent) != 1 || rent[0].Key != "$gte" {
			t.Fatalf("expected single $gte clause, got %v", rent)
		}
	})
}

func findClause(t *testing.T, doc bson.D, key string) bson.D {
	t.Helper()
	for _, e := range doc {
		if e.Key == key {
			inner, ok := e.Value.(bson.D)
			if !ok {
				t.Fatalf("clause %q is not a document: %v", key, e.Value)
			}
			return inner
		}
	}
	t.Fatalf("clause %q not found in %v", key, doc)
	return nil
}
