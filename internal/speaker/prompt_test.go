package speaker

import (
	"strings"
	"testing"

	"github.com/nguyentantai21042004/speaker-scribe/internal/transcriber"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Query{
		Questions: []string{"Who is speaker A?", "Who is speaker B?"},
		InputText: "Speaker A:\nhi\n",
		Context:   "Infer names.",
	})

	for _, want := range []string{"Infer names.", "Speaker A:\nhi\n", "1. Who is speaker A?", "2. Who is speaker B?", `"answers"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{"wrapped object", `{"answers":[{"question":"Who is speaker A?","answer":"Ada"}]}`, 1, false},
		{"bare array", `[{"question":"Who is speaker A?","answer":"Ada"},{"question":"Who is speaker B?","answer":"Bo"}]`, 2, false},
		{"fenced", "```json\n{\"answers\":[{\"question\":\"Who is speaker A?\",\"answer\":\"Ada\"}]}\n```", 1, false},
		{"empty answers", `{"answers":[]}`, 0, false},
		{"not json", "Speaker A is Ada.", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswers(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAnswers() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("parseAnswers() = %+v, want %d answers", got, tt.want)
			}
		})
	}
}

func TestDecodeAnswersAlignsQuestions(t *testing.T) {
	questions := []string{"Who is speaker A?", "Who is speaker B?"}

	tests := []struct {
		name  string
		reply string
		want  map[string]string
	}{
		{
			name:  "verbatim",
			reply: `{"answers":[{"question":"Who is speaker A?","answer":"Ada"},{"question":"Who is speaker B?","answer":"Bo"}]}`,
			want:  map[string]string{"A": "Ada", "B": "Bo"},
		},
		{
			name:  "case and spacing changed",
			reply: `{"answers":[{"question":"Who is Speaker B?","answer":"Bo"},{"question":"who is  SPEAKER A?","answer":"Ada"}]}`,
			want:  map[string]string{"A": "Ada", "B": "Bo"},
		},
		{
			name:  "rephrased, one answer per question",
			reply: `[{"question":"Speaker A","answer":"Ada"},{"question":"Speaker B","answer":"Bo"}]`,
			want:  map[string]string{"A": "Ada", "B": "Bo"},
		},
		{
			name:  "rephrased and incomplete",
			reply: `[{"question":"Speaker A","answer":"Ada"}]`,
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers, err := decodeAnswers(questions, tt.reply)
			if err != nil {
				t.Fatalf("decodeAnswers() error = %v", err)
			}
			mapping := ParseMapping(answers)
			if len(mapping) != len(tt.want) {
				t.Fatalf("mapping = %v, want %v", mapping, tt.want)
			}
			for label, name := range tt.want {
				if mapping[label] != name {
					t.Errorf("mapping[%s] = %q, want %q", label, mapping[label], name)
				}
			}
		})
	}
}

func TestDecodeAnswersRendersChangedCase(t *testing.T) {
	answers, err := decodeAnswers([]string{"Who is speaker A?"}, `{"answers":[{"question":"Who is Speaker A?","answer":"Ada"}]}`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Render([]transcriber.Utterance{{Speaker: "A", Text: "hi"}}, ParseMapping(answers))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "Ada:\nhi\n\n" {
		t.Errorf("Render() = %q", got)
	}
}
