package oracle

import "testing"

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`},
		{"surrounded", `Here is the result: {"a": 1} hope it helps`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"nested", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"brace in string", `{"a": "close } brace"}`, `{"a": "close } brace"}`},
		{"escaped quote", `{"a": "say \"hi\""}`, `{"a": "say \"hi\""}`},
		{"no object", "plain prose", ""},
		{"unbalanced", `{"a": 1`, ""},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractJSONObject(c.in); got != c.want {
				t.Errorf("ExtractJSONObject(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
