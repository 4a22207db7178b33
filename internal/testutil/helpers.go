// internal/testutil/helpers.go
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// AssertEqual verifica que dos valores sean iguales (comparación profunda).
func AssertEqual(t testing.TB, got, want interface{}, msg string) {
	t.Helper()
	assert.Equal(t, want, got, msg)
}

// AssertNotEqual verifica que dos valores sean diferentes.
func AssertNotEqual(t testing.TB, got, want interface{}, msg string) {
	t.Helper()
	assert.NotEqual(t, want, got, msg)
}

// AssertNil acepta también punteros tipados nil.
func AssertNil(t testing.TB, got interface{}, msg string) {
	t.Helper()
	assert.Nil(t, got, msg)
}

func AssertNotNil(t testing.TB, got interface{}, msg string) {
	t.Helper()
	assert.NotNil(t, got, msg)
}

func AssertError(t testing.TB, err error, msg string) {
	t.Helper()
	assert.Error(t, err, msg)
}

// AssertErrorIs verifica que target esté en la cadena de err.
func AssertErrorIs(t testing.TB, err, target error, msg string) {
	t.Helper()
	assert.ErrorIs(t, err, target, msg)
}

func AssertNoError(t testing.TB, err error, msg string) {
	t.Helper()
	assert.NoError(t, err, msg)
}

func AssertTrue(t testing.TB, condition bool, msg string) {
	t.Helper()
	assert.True(t, condition, msg)
}

func AssertFalse(t testing.TB, condition bool, msg string) {
	t.Helper()
	assert.False(t, condition, msg)
}

// AssertContains acepta slices, maps y strings.
func AssertContains(t testing.TB, container interface{}, element interface{}, msg string) {
	t.Helper()
	assert.Contains(t, container, element, msg)
}

// AssertLen funciona con cualquier tipo que soporte len().
func AssertLen(t testing.TB, object interface{}, want int, msg string) {
	t.Helper()
	assert.Len(t, object, want, msg)
}

// AssertNoDiff compara estructuras con go-cmp y muestra el diff completo.
func AssertNoDiff(t testing.TB, want, got interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
