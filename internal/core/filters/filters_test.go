package filters

import (
	"encoding/json"
	"testing"
)

func num(v float64) *float64 { return &v }

func TestEvaluate_EmptyListPassesEverything(t *testing.T) {
	records := []Record{
		nil,
		{},
		{"gender": "Homme"},
	}
	for _, rec := range records {
		if !Evaluate(nil, rec) {
			t.Fatalf("empty filter list rejected %v", rec)
		}
		if !Evaluate([]Filter{}, rec) {
			t.Fatalf("empty filter slice rejected %v", rec)
		}
	}
}

func TestEvaluate_InactiveFiltersAreSkipped(t *testing.T) {
	fs := []Filter{
		{Field: "gender", Kind: KindEnum},         // no values
		{Field: "birthdate", Kind: KindDate},      // no condition
		{Field: "debt", Kind: KindNumber},         // no condition
		{Field: "", Kind: KindEnum, Values: []string{"x"}}, // no field
	}
	if !Evaluate(fs, Record{"gender": "Femme"}) {
		t.Fatal("inactive filters must not reject")
	}
}

func TestEvaluate_Number(t *testing.T) {
	tests := []struct {
		name string
		cond NumberCondition
		rec  Record
		want bool
	}{
		{"equals match", NumberCondition{Comparator: CmpEquals, Number: num(3)}, Record{"n": float64(3)}, true},
		{"equals int value", NumberCondition{Comparator: CmpEquals, Number: num(3)}, Record{"n": 3}, true},
		{"equals miss", NumberCondition{Comparator: CmpEquals, Number: num(3)}, Record{"n": float64(4)}, false},
		{"lower strict", NumberCondition{Comparator: CmpLower, Number: num(3)}, Record{"n": float64(3)}, false},
		{"greater strict", NumberCondition{Comparator: CmpGreater, Number: num(3)}, Record{"n": float64(4)}, true},
		{"between inclusive", NumberCondition{Comparator: CmpBetween, Number: num(2), Number2: num(5)}, Record{"n": float64(5)}, true},
		{"between reversed bounds", NumberCondition{Comparator: CmpBetween, Number: num(5), Number2: num(2)}, Record{"n": float64(3)}, true},
		{"between missing second bound", NumberCondition{Comparator: CmpBetween, Number: num(2)}, Record{"n": float64(3)}, false},
		{"unfilled matches absent", NumberCondition{Comparator: CmpUnfilled}, Record{}, true},
		{"unfilled rejects present", NumberCondition{Comparator: CmpUnfilled}, Record{"n": float64(0)}, false},
		{"absent fails other comparators", NumberCondition{Comparator: CmpEquals, Number: num(3)}, Record{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := []Filter{{Field: "n", Kind: KindNumber, Number: &tc.cond}}
			if got := Evaluate(fs, tc.rec); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluate_Date(t *testing.T) {
	tests := []struct {
		name string
		cond DateCondition
		rec  Record
		want bool
	}{
		{"before", DateCondition{Comparator: CmpBefore, Date: "2024-06-01"}, Record{"dueAt": "2024-05-01T10:00:00.000Z"}, true},
		{"not before", DateCondition{Comparator: CmpBefore, Date: "2024-06-01"}, Record{"dueAt": "2024-07-01T10:00:00.000Z"}, false},
		{"after", DateCondition{Comparator: CmpAfter, Date: "2024-06-01"}, Record{"dueAt": "2024-07-01T10:00:00.000Z"}, true},
		{"equals same day", DateCondition{Comparator: CmpEquals, Date: "2024-06-01"}, Record{"dueAt": "2024-06-01T23:30:00.000Z"}, true},
		{"equals other day", DateCondition{Comparator: CmpEquals, Date: "2024-06-01"}, Record{"dueAt": "2024-06-02T00:30:00.000Z"}, false},
		{"unfilled matches absent", DateCondition{Comparator: CmpUnfilled}, Record{}, true},
		{"unfilled matches empty", DateCondition{Comparator: CmpUnfilled}, Record{"dueAt": ""}, true},
		{"unfilled rejects set", DateCondition{Comparator: CmpUnfilled}, Record{"dueAt": "2024-06-01T00:00:00.000Z"}, false},
		{"absent fails other comparators", DateCondition{Comparator: CmpBefore, Date: "2024-06-01"}, Record{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := []Filter{{Field: "dueAt", Kind: KindDate, Date: &tc.cond}}
			if got := Evaluate(fs, tc.rec); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluate_Boolean(t *testing.T) {
	oui := []Filter{{Field: "outOfActiveList", Kind: KindBoolean, Values: []string{"Oui"}}}
	non := []Filter{{Field: "outOfActiveList", Kind: KindBoolean, Values: []string{"Non"}}}

	if !Evaluate(oui, Record{"outOfActiveList": true}) {
		t.Fatal("Oui should match true")
	}
	if Evaluate(oui, Record{"outOfActiveList": false}) {
		t.Fatal("Oui should reject false")
	}
	if !Evaluate(non, Record{"outOfActiveList": false}) {
		t.Fatal("Non should match false")
	}
	if !Evaluate(non, Record{}) {
		t.Fatal("Non should match absent")
	}
}

func TestEvaluate_YesNo(t *testing.T) {
	fs := func(v string) []Filter {
		return []Filter{{Field: "alertness", Kind: KindYesNo, Values: []string{v}}}
	}
	if !Evaluate(fs("Oui"), Record{"alertness": true}) {
		t.Fatal("Oui should match true")
	}
	if Evaluate(fs("Oui"), Record{"alertness": false}) {
		t.Fatal("Oui should reject false")
	}
	if !Evaluate(fs("Non"), Record{"alertness": false}) {
		t.Fatal("Non should match an explicit false")
	}
	if Evaluate(fs("Non"), Record{"alertness": true}) {
		t.Fatal("Non should reject true")
	}
	if Evaluate(fs("Non"), Record{}) {
		t.Fatal("Non should reject an absent value")
	}
	if !Evaluate(fs(Unfilled), Record{}) {
		t.Fatal("unfilled should match absent")
	}
	if !Evaluate(fs(Unfilled), Record{"alertness": nil}) {
		t.Fatal("unfilled should match an explicit null")
	}
	if Evaluate(fs(Unfilled), Record{"alertness": false}) {
		t.Fatal("an explicit false is a Non, not unfilled")
	}
}

func TestEvaluate_Choice(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		rec  Record
		want bool
	}{
		{
			"enum scalar match",
			Filter{Field: "gender", Kind: KindEnum, Values: []string{"Homme", "Femme"}},
			Record{"gender": "Femme"},
			true,
		},
		{
			"enum scalar miss",
			Filter{Field: "gender", Kind: KindEnum, Values: []string{"Homme"}},
			Record{"gender": "Femme"},
			false,
		},
		{
			"multi-choice array membership",
			Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{"RSA"}},
			Record{"resources": []string{"AAH", "RSA"}},
			true,
		},
		{
			"unfilled matches empty array",
			Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{Unfilled}},
			Record{"resources": []string{}},
			true,
		},
		{
			"unfilled matches blank string",
			Filter{Field: "address", Kind: KindEnum, Values: []string{Unfilled}},
			Record{"address": "   "},
			true,
		},
		{
			"unfilled matches absent field",
			Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{Unfilled}},
			Record{},
			true,
		},
		{
			"absent field fails closed on concrete values",
			Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{"RSA"}},
			Record{},
			false,
		},
		{
			"text folded substring",
			Filter{Field: "description", Kind: KindText, Values: []string{"hebergement"}},
			Record{"description": "Hébergement d'urgence depuis mars"},
			true,
		},
		{
			"text miss",
			Filter{Field: "description", Kind: KindText, Values: []string{"squat"}},
			Record{"description": "Hébergement d'urgence"},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate([]Filter{tc.f}, tc.rec); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

// Records coming off a stored document pass through encoding/json, so
// array fields land as []any rather than []string.
func TestEvaluate_JSONDecodedRecord(t *testing.T) {
	var rec Record
	doc := `{"gender":"Femme","resources":["AAH","RSA"],"empty":[],"alertness":false,"debt":2}`
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"array membership", Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{"RSA"}}, true},
		{"array miss", Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{"Salaire"}}, false},
		{"unfilled on empty array", Filter{Field: "empty", Kind: KindMultiChoice, Values: []string{Unfilled}}, true},
		{"unfilled rejects populated array", Filter{Field: "resources", Kind: KindMultiChoice, Values: []string{Unfilled}}, false},
		{"enum over array", Filter{Field: "resources", Kind: KindEnum, Values: []string{"AAH"}}, true},
		{"yes-no Non on decoded false", Filter{Field: "alertness", Kind: KindYesNo, Values: []string{"Non"}}, true},
		{"number over decoded float", Filter{Field: "debt", Kind: KindNumber, Number: &NumberCondition{Comparator: CmpEquals, Number: num(2)}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate([]Filter{tc.f}, rec); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluate_AndAcrossFilters(t *testing.T) {
	fs := []Filter{
		{Field: "gender", Kind: KindEnum, Values: []string{"Femme"}},
		{Field: "resources", Kind: KindMultiChoice, Values: []string{"RSA"}},
	}
	rec := Record{"gender": "Femme", "resources": []string{"RSA"}}
	if !Evaluate(fs, rec) {
		t.Fatal("record satisfying both filters rejected")
	}
	rec["resources"] = []string{"AAH"}
	if Evaluate(fs, rec) {
		t.Fatal("record failing one filter accepted")
	}
}
