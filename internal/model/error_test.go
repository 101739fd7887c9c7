package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	named := Errorf(ErrDuplicateOrder, "Order for product %q already exists", "Lamp")
	wrapped := fmt.Errorf("checkout: %w", named)

	assert.True(t, errors.Is(wrapped, ErrDuplicateOrder))
	assert.False(t, errors.Is(wrapped, ErrDuplicateItem))
	assert.Equal(t, `Order for product "Lamp" already exists`, named.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeNothingUpdated, CodeOf(fmt.Errorf("wrap: %w", ErrNothingUpdated)))
	assert.Equal(t, ErrCodeInternalError, CodeOf(errors.New("boom")))
}

func TestAuthContext(t *testing.T) {
	assert.False(t, AuthContext{}.Authenticated())
	assert.True(t, AuthContext{UserID: "u1", Role: RoleUser}.Authenticated())
	assert.False(t, AuthContext{UserID: "u1", Role: RoleUser}.IsSeller())
	assert.True(t, AuthContext{UserID: "s1", Role: RoleSeller}.IsSeller())
	assert.Equal(t, RoleUser, ParseRole("admin"))
	assert.Equal(t, RoleSeller, ParseRole("Seller"))
}
