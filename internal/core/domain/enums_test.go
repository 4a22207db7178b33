// internal/core/domain/enums_test.go
package domain

import (
	"testing"

	"passivemap/internal/testutil"
)

func TestSourceType_IsValid(t *testing.T) {
	testutil.AssertTrue(t, SourceTypeAPI.IsValid(), "api")
	testutil.AssertTrue(t, SourceTypeBuiltin.IsValid(), "builtin")
	testutil.AssertFalse(t, SourceType("cli").IsValid(), "cli is not used")
	testutil.AssertEqual(t, SourceTypeAPI.String(), "api", "string")
}

func TestAllCategories(t *testing.T) {
	testutil.AssertEqual(t, AllCategories(), []Category{
		CategorySubdomains, CategoryIPs, CategoryServices, CategoryURLs, CategoryDorks,
	}, "document order")
}
