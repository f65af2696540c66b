package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "no markup here",
			want: "no markup here",
		},
		{
			name: "block tags become newlines",
			in:   "<p>first</p><p>second</p>",
			want: "first\nsecond",
		},
		{
			name: "inline tags removed",
			in:   "<p>some <b>bold</b> and <i>italic</i> text</p>",
			want: "some bold and italic text",
		},
		{
			name: "entities unescaped",
			in:   "<p>Tom &amp; Jerry &lt;3</p>",
			want: "Tom & Jerry <3",
		},
		{
			name: "br breaks a line",
			in:   "line one<br>line two",
			want: "line one\nline two",
		},
		{
			name: "list items on separate lines",
			in:   "<ul><li>alpha</li><li>beta</li></ul>",
			want: "alpha\nbeta",
		},
		{
			name: "blank runs collapse",
			in:   "<div><p></p><p>  </p><p>kept</p></div>",
			want: "kept",
		},
		{
			name: "malformed markup does not fail",
			in:   "<p>unclosed <b>still here",
			want: "unclosed still here",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}
