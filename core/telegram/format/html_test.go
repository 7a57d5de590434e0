package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "<code>@summer_bot</code>", Code(Mention("summer_bot")))
	assert.Equal(t, "<code>a&lt;b&gt;&amp;</code>", Code("a<b>&"))
}

func TestMention(t *testing.T) {
	assert.Equal(t, "@bot", Mention("bot"))
	assert.Equal(t, "@bot", Mention(" @bot "))
	assert.Equal(t, "", Mention(""))
}
