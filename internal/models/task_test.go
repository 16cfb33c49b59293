package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:00", want: TimeOfDay{Hour: 8, Minute: 0}},
		{in: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{in: " 00:00 ", want: TimeOfDay{}},
		{in: "24:00", wantErr: true},
		{in: "8am", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeOfDay_Matches(t *testing.T) {
	deadline := TimeOfDay{Hour: 8, Minute: 0}
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	if !deadline.Matches(day.Add(8*time.Hour + 30*time.Second)) {
		t.Error("expected 08:00:30 to match 08:00")
	}
	if deadline.Matches(day.Add(8*time.Hour + time.Minute)) {
		t.Error("expected 08:01 not to match 08:00")
	}
	if deadline.Matches(day.Add(20 * time.Hour)) {
		t.Error("expected 20:00 not to match 08:00")
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{name: "valid", task: Task{ID: "a", Name: "Stretch", Deadline: &TimeOfDay{Hour: 8}}},
		{name: "no deadline", task: Task{ID: "a", Name: "Stretch"}},
		{name: "empty name", task: Task{ID: "a", Name: "  "}, wantErr: true},
		{name: "out of range deadline", task: Task{ID: "a", Name: "x", Deadline: &TimeOfDay{Hour: 25}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTask_JSON(t *testing.T) {
	task := Task{ID: "a", Name: "Walk", Category: "health", Deadline: &TimeOfDay{Hour: 7, Minute: 5}}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"a","name":"Walk","category":"health","deadline":"07:05"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var decoded Task
	if err := json.Unmarshal([]byte(`{"id":"b","name":"Read"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.HasDeadline() {
		t.Error("expected task without deadline")
	}
	if decoded.DeadlineString() != "-" {
		t.Errorf("DeadlineString() = %q, want -", decoded.DeadlineString())
	}

	if err := json.Unmarshal([]byte(`{"id":"c","name":"x","deadline":"99:99"}`), &decoded); err == nil {
		t.Error("expected error for invalid deadline")
	}
}
