package service

import (
	"custodian/internal/compliance/models"
	pstrings "custodian/pkg/platform/strings"
)

// partitionCategories splits the category universe into affected and
// unaffected sets. Requested categories outside the universe are still
// affected; they just have no complement.
func partitionCategories(scope models.ErasureScope, requested []string) (affected, unaffected []string) {
	if scope != models.ScopeSpecificCategories {
		return append([]string(nil), models.CategoryUniverse...), []string{}
	}
	affected = pstrings.DedupeAndTrimLower(requested)
	if affected == nil {
		affected = []string{}
	}
	return affected, pstrings.Subtract(models.CategoryUniverse, affected)
}
