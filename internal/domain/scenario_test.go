package domain

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"low", SeverityLow, false},
		{"MEDIUM", SeverityMedium, false},
		{" High ", SeverityHigh, false},
		{"critical", SeverityCritical, false},
		{"urgent", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeverity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityLow < SeverityMedium && SeverityMedium < SeverityHigh && SeverityHigh < SeverityCritical) {
		t.Error("severity levels must be ordered low < medium < high < critical")
	}
}

func TestScenarioValidate(t *testing.T) {
	valid := Scenario{ID: "emp-001", Title: "Employer Not Paying Salary or Wages", Severity: SeverityHigh}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	missingID := Scenario{Title: "t", Severity: SeverityLow}
	if err := missingID.Validate(); err == nil {
		t.Error("expected error for missing id")
	}

	badSeverity := Scenario{ID: "x", Title: "t", Severity: Severity(99)}
	if err := badSeverity.Validate(); err == nil {
		t.Error("expected error for invalid severity")
	}
}

func TestFitVector(t *testing.T) {
	tests := []struct {
		name    string
		in      []float32
		dim     int
		wantLen int
	}{
		{"shorter is zero-padded", []float32{1, 2}, 4, 4},
		{"longer is truncated", []float32{1, 2, 3, 4, 5}, 3, 3},
		{"exact is unchanged", []float32{1, 2, 3}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitVector(tt.in, tt.dim)
			if len(got) != tt.wantLen {
				t.Fatalf("got len %d, want %d", len(got), tt.wantLen)
			}
			for i := 0; i < len(tt.in) && i < tt.dim; i++ {
				if got[i] != tt.in[i] {
					t.Errorf("element %d changed: got %v, want %v", i, got[i], tt.in[i])
				}
			}
			for i := len(tt.in); i < tt.dim; i++ {
				if got[i] != 0 {
					t.Errorf("padding element %d = %v, want 0", i, got[i])
				}
			}
		})
	}
}
