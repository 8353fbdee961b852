package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"roamify/pkg/model"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestBuildListFilterAlwaysScopesToActive(t *testing.T) {
	query := buildListFilter(model.PropertyFilter{})
	if got := query["status"]; got != model.PropertyActive {
		t.Errorf("status = %v, want %v", got, model.PropertyActive)
	}
	if len(query) != 1 {
		t.Errorf("empty filter should only constrain status, got %v", query)
	}
}

func TestBuildListFilterCity(t *testing.T) {
	query := buildListFilter(model.PropertyFilter{City: "Lisbon"})
	want := bson.M{"$regex": "Lisbon", "$options": "i"}
	if !reflect.DeepEqual(query["location.city"], want) {
		t.Errorf("location.city = %v, want %v", query["location.city"], want)
	}
}

func TestBuildListFilterEscapesRegexInput(t *testing.T) {
	query := buildListFilter(model.PropertyFilter{Term: "(a+)+b"})
	or, ok := query["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("expected three-way $or, got %v", query["$or"])
	}
	got := or[0]["title"].(bson.M)["$regex"].(string)
	if got == "(a+)+b" {
		t.Error("free-text term reached the regex unescaped")
	}
	want := `\(a\+\)\+b`
	if got != want {
		t.Errorf("escaped term = %q, want %q", got, want)
	}
}

func TestBuildListFilterPriceRange(t *testing.T) {
	tests := []struct {
		name   string
		filter model.PropertyFilter
		want   bson.M
	}{
		{
			"min only",
			model.PropertyFilter{MinPrice: floatPtr(50)},
			bson.M{"$gte": 50.0},
		},
		{
			"max only",
			model.PropertyFilter{MaxPrice: floatPtr(200)},
			bson.M{"$lte": 200.0},
		},
		{
			"both bounds",
			model.PropertyFilter{MinPrice: floatPtr(50), MaxPrice: floatPtr(200)},
			bson.M{"$gte": 50.0, "$lte": 200.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := buildListFilter(tt.filter)
			if !reflect.DeepEqual(query["price.regular"], tt.want) {
				t.Errorf("price.regular = %v, want %v", query["price.regular"], tt.want)
			}
		})
	}
}

func TestBuildListFilterGuestsAndType(t *testing.T) {
	query := buildListFilter(model.PropertyFilter{Type: "Villa", Guests: intPtr(4)})
	if query["type"] != "Villa" {
		t.Errorf("type = %v, want Villa", query["type"])
	}
	want := bson.M{"$gte": 4}
	if !reflect.DeepEqual(query["rules.max_guests"], want) {
		t.Errorf("rules.max_guests = %v, want %v", query["rules.max_guests"], want)
	}
}
