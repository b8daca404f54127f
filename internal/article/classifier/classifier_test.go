package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCensored(t *testing.T) {
	c := New(DefaultCensoredKeywords, DefaultPositiveKeywords)

	tests := []struct {
		title string
		want  bool
	}{
		{title: "SpaceX launches", want: true},
		{title: "MUSK says", want: true},
		{title: "Elon Musk and NASA", want: true},
		{title: "NASA mission", want: false},
		{title: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsCensored(tt.title))
		})
	}
}

func TestSentiment(t *testing.T) {
	c := New(DefaultCensoredKeywords, DefaultPositiveKeywords)

	tests := []struct {
		title string
		want  int
	}{
		{title: "Trip to Mars", want: 1},
		{title: "MOON base", want: 1},
		{title: "Honeymoon in orbit", want: 1},
		{title: "ISS update", want: 0},
		{title: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Sentiment(tt.title))
		})
	}
}

func TestNew_CustomKeywords(t *testing.T) {
	c := New([]string{" Boeing "}, []string{"Artemis"})

	assert.True(t, c.IsCensored("boeing starliner delay"))
	assert.False(t, c.IsCensored("SpaceX launches"))
	assert.Equal(t, 1, c.Sentiment("ARTEMIS II crew"))
	assert.Equal(t, 0, c.Sentiment("Trip to Mars"))
}

func TestNew_EmptyListDisablesMatch(t *testing.T) {
	c := New([]string{}, nil)

	assert.False(t, c.IsCensored("SpaceX launches"))
	assert.False(t, c.IsCensored("Musk says"))
	assert.Equal(t, 1, c.Sentiment("mars"))
}

func TestNew_NilListsUseDefaults(t *testing.T) {
	c := New(nil, nil)

	assert.True(t, c.IsCensored("spacex"))
	assert.Equal(t, 1, c.Sentiment("mars"))
}

func TestNew_DoesNotAliasDefaults(t *testing.T) {
	before := append([]string(nil), DefaultCensoredKeywords...)
	New([]string{"UPPER"}, nil)

	assert.Equal(t, before, DefaultCensoredKeywords)
}
