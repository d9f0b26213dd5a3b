package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTable(t *testing.T) {
	all := Fields()
	require.Len(t, all, 12)
	assert.Equal(t, "author_profile_image", all[0].Name)
	assert.Equal(t, "author_cta_action_url", all[11].Name)

	hook, ok := Lookup("author_cta_hook")
	require.True(t, ok)
	assert.Equal(t, KindText, hook.Kind)

	_, ok = Lookup("favorite_color")
	assert.False(t, ok)
}

func TestOwnerKey(t *testing.T) {
	assert.Equal(t, "user_42", OwnerKey("42"))
}

func TestToProfile(t *testing.T) {
	p := ToProfile(map[string]string{
		"linkedin_url":    "https://linkedin.com/in/x",
		"author_cta_hook": "Hire me",
		"favorite_color":  "blue",
	})

	assert.Equal(t, "https://linkedin.com/in/x", p.LinkedinURL)
	assert.Equal(t, "Hire me", p.AuthorCTAHook)
	assert.Equal(t, "", p.TwitterURL)

	spec, _ := Lookup("linkedin_url")
	assert.Equal(t, "https://linkedin.com/in/x", spec.Value(&p))
}
