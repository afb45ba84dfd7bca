package model

import (
	"reflect"
	"testing"
)

func TestStringListValue(t *testing.T) {
	tests := []struct {
		name string
		list StringList
		want string
	}{
		{"nil list", nil, "[]"},
		{"empty list", StringList{}, "[]"},
		{"values", StringList{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.list.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			if v != tt.want {
				t.Errorf("Value() = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestStringListScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want StringList
	}{
		{"nil source", nil, StringList{}},
		{"empty bytes", []byte{}, StringList{}},
		{"bytes", []byte(`["x","y"]`), StringList{"x", "y"}},
		{"string", `["z"]`, StringList{"z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list StringList
			if err := list.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if !reflect.DeepEqual(list, tt.want) {
				t.Errorf("Scan() = %#v, want %#v", list, tt.want)
			}
		})
	}

	var list StringList
	if err := list.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestSessionAnswered(t *testing.T) {
	session := InterviewSession{
		Questions:    StringList{"q1", "q2"},
		Answers:      StringList{"a1"},
		CurrentIndex: 1,
	}
	if session.Answered() {
		t.Error("session with pending questions reported as answered")
	}

	session.Answers = append(session.Answers, "a2")
	session.CurrentIndex = 2
	if !session.Answered() {
		t.Error("fully answered session not reported as answered")
	}
}
