package optimistic

import (
	"reflect"
	"testing"

	"github.com/ermekov/taskfold/internal/unified"
)

func sampleList() []unified.Task {
	return []unified.Task{
		{ID: unified.RemoteID(1), Text: "buy milk", SortOrder: 0},
		{ID: unified.RemoteID(2), Text: "walk dog", SortOrder: 1},
		{ID: unified.LocalID("abc-123"), Text: "call mom", SortOrder: 2},
	}
}

func TestCreateAppendsWithoutMutatingInput(t *testing.T) {
	list := sampleList()
	snapshot := make([]unified.Task, len(list))
	copy(snapshot, list)

	next := Create(list, unified.Task{Text: "new one", SortOrder: 3})

	if len(next) != len(list)+1 {
		t.Fatalf("expected %d tasks, got %d", len(list)+1, len(next))
	}
	if !reflect.DeepEqual(list, snapshot) {
		t.Error("input list was mutated")
	}
	if next[len(next)-1].Text != "new one" {
		t.Errorf("new task not appended, got %q", next[len(next)-1].Text)
	}
}

func TestCreateAssignsNegativePlaceholder(t *testing.T) {
	tests := []struct {
		name string
		list []unified.Task
		want int64
	}{
		{"empty list", nil, -1},
		{"positive ids only", sampleList(), -1},
		{"existing placeholder", []unified.Task{{ID: unified.RemoteID(-3)}}, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Create(tt.list, unified.Task{Text: "x"})
			id, ok := next[len(next)-1].ID.Remote()
			if !ok {
				t.Fatal("placeholder id is not remote-space")
			}
			if id != tt.want {
				t.Errorf("placeholder = %d, want %d", id, tt.want)
			}
		})
	}
}

func TestCreateKeepsExplicitID(t *testing.T) {
	next := Create(nil, unified.Task{ID: unified.LocalID("keep-me"), Text: "x"})
	if id, _ := next[0].ID.Local(); id != "keep-me" {
		t.Errorf("explicit id was replaced, got %v", next[0].ID)
	}
}

func TestToggle(t *testing.T) {
	list := sampleList()

	next := Toggle(list, unified.RemoteID(2), true)

	if list[1].Completed {
		t.Error("input list was mutated")
	}
	if !next[1].Completed {
		t.Error("task 2 not completed in result")
	}
	if next[0].Completed || next[2].Completed {
		t.Error("other tasks were touched")
	}
}

func TestMutationsNoOpOnUnknownID(t *testing.T) {
	list := sampleList()

	ops := []struct {
		name string
		next []unified.Task
	}{
		{"toggle", Toggle(list, unified.RemoteID(99), true)},
		{"delete", Delete(list, unified.LocalID("nope"))},
		{"reorder", Reorder(list, unified.RemoteID(99), 0)},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			if len(op.next) != len(list) {
				t.Fatalf("length changed: %d -> %d", len(list), len(op.next))
			}
			// A no-op returns the input slice itself, not a copy
			if &op.next[0] != &list[0] {
				t.Error("expected the identical input slice back")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	list := sampleList()

	next := Delete(list, unified.LocalID("abc-123"))

	if len(next) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(next))
	}
	for _, task := range next {
		if task.ID.Equal(unified.LocalID("abc-123")) {
			t.Error("deleted task still present")
		}
	}
	if len(list) != 3 {
		t.Error("input list was mutated")
	}
}

func TestReorderKeepsOrdersContiguous(t *testing.T) {
	list := sampleList()

	tests := []struct {
		name     string
		id       unified.EntityID
		newOrder int
		wantText []string
	}{
		{"move first to last", unified.RemoteID(1), 2, []string{"walk dog", "call mom", "buy milk"}},
		{"move last to first", unified.LocalID("abc-123"), 0, []string{"call mom", "buy milk", "walk dog"}},
		{"clamp negative", unified.RemoteID(2), -5, []string{"walk dog", "buy milk", "call mom"}},
		{"clamp past end", unified.RemoteID(1), 99, []string{"walk dog", "call mom", "buy milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reorder(list, tt.id, tt.newOrder)

			for i, want := range tt.wantText {
				if next[i].Text != want {
					t.Errorf("position %d = %q, want %q", i, next[i].Text, want)
				}
				if next[i].SortOrder != i {
					t.Errorf("position %d has sort order %d, want %d", i, next[i].SortOrder, i)
				}
			}

			// Input stays untouched
			for i, task := range sampleList() {
				if list[i].Text != task.Text || list[i].SortOrder != task.SortOrder {
					t.Fatal("input list was mutated")
				}
			}
		})
	}
}
