package quiz

import "testing"

func TestQuestionUsableRequiresExactAnswerMatch(t *testing.T) {
	q := Question{
		Question: "每晚住宿費上限？",
		Options:  []string{"1500 元", "2000 元", "2500 元", "3000 元"},
		Answer:   "2000 元",
	}
	if !q.Usable() {
		t.Fatal("expected question to be usable")
	}

	q.Answer = "2000元"
	if q.Usable() {
		t.Fatal("answer without exact option match must be unusable")
	}
}

func TestQuestionUsableRequiresFourOptions(t *testing.T) {
	cases := map[string][]string{
		"two":  {"1500 元", "2000 元"},
		"five": {"1500 元", "2000 元", "2500 元", "3000 元", "3500 元"},
	}
	for name, options := range cases {
		q := Question{Question: "每晚住宿費上限？", Options: options, Answer: "2000 元"}
		if q.Usable() {
			t.Fatalf("%s options: expected question to be unusable", name)
		}
	}
}

func TestFilterUsableDropsBrokenQuestions(t *testing.T) {
	questions := []Question{
		{Question: "a", Options: []string{"w", "x", "y", "z"}, Answer: "x"},
		{Question: "", Options: []string{"w", "x", "y", "z"}, Answer: "x"},
		{Question: "c", Options: nil, Answer: ""},
		{Question: "d", Options: []string{"x", "x", "x", "x"}, Answer: "x"},
		{Question: "e", Options: []string{"x", "y"}, Answer: "x"},
	}

	got := FilterUsable(questions)
	if len(got) != 2 {
		t.Fatalf("expected 2 usable questions, got %d", len(got))
	}
	if got[0].Question != "a" || got[1].Question != "d" {
		t.Fatalf("unexpected order: %+v", got)
	}

	got[0].Options[0] = "changed"
	if questions[0].Options[0] != "w" {
		t.Fatal("filtered questions must not share option slices")
	}
}
