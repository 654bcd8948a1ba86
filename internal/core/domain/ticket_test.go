package domain_test

import (
	"testing"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestReference_DisplayName(t *testing.T) {
	t.Run("named reference resolves to its name", func(t *testing.T) {
		ref := domain.NamedRef(5, "Alice")
		assert.Equal(t, "Alice", ref.DisplayName())
	})

	t.Run("bare id resolves to its decimal form", func(t *testing.T) {
		ref := domain.IDRef(5)
		assert.Equal(t, "5", ref.DisplayName())
	})

	t.Run("absent reference resolves to empty string", func(t *testing.T) {
		var ref domain.Reference
		assert.Equal(t, "", ref.DisplayName())
	})

	t.Run("named reference with empty name resolves to empty string", func(t *testing.T) {
		ref := domain.NamedRef(7, "")
		assert.Equal(t, "", ref.DisplayName())
	})
}

func TestReference_OrDefault(t *testing.T) {
	t.Run("absent reference falls back to the default", func(t *testing.T) {
		var ref domain.Reference
		assert.Equal(t, "Unassigned", ref.OrDefault(domain.DefaultAssignee))
	})

	t.Run("named reference ignores the default", func(t *testing.T) {
		ref := domain.NamedRef(3, "ACME Corp")
		assert.Equal(t, "ACME Corp", ref.OrDefault(domain.DefaultCustomer))
	})

	t.Run("bare id keeps its decimal form over the default", func(t *testing.T) {
		ref := domain.IDRef(42)
		assert.Equal(t, "42", ref.OrDefault(domain.DefaultAssignee))
	})
}

func TestAuthorName(t *testing.T) {
	t.Run("nil actor is the ghost", func(t *testing.T) {
		assert.Equal(t, domain.GhostActor, domain.AuthorName(nil))
	})

	t.Run("empty login is the ghost", func(t *testing.T) {
		assert.Equal(t, domain.GhostActor, domain.AuthorName(&domain.Actor{}))
	})

	t.Run("login passes through", func(t *testing.T) {
		assert.Equal(t, "octocat", domain.AuthorName(&domain.Actor{Login: "octocat"}))
	})
}
