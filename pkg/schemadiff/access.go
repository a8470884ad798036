package schemadiff

import (
	"github.com/rymskip/evenframe-sub000/pkg/compare"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

func compareAccessSets(changes *SchemaChanges, current, target *schema.SchemaDefinition) {
	currentByName := current.AccessesByName()
	targetByName := target.AccessesByName()

	added, removed, common := compare.SetDiff(currentByName, targetByName)
	changes.NewAccesses = append(changes.NewAccesses, added...)
	changes.RemovedAccesses = append(changes.RemovedAccesses, removed...)

	for _, name := range common {
		if diffs := compareAccesses(currentByName[name], targetByName[name]); len(diffs) > 0 {
			changes.ModifiedAccesses = append(changes.ModifiedAccesses, AccessChange{
				AccessName: name,
				Changes:    diffs,
			})
		}
	}
}

// compareAccesses returns one change per differing attribute. Token and
// session duration changes are reported as a single DurationChanged.
func compareAccesses(current, target *schema.AccessDefinition) []AccessChangeType {
	var changes []AccessChangeType

	if current.Type != target.Type {
		changes = append(changes, Other("Access type changed from %s to %s", current.Type, target.Type))
	}

	if current.DatabaseLevel != target.DatabaseLevel {
		changes = append(changes, Other("Access level changed from %s to %s", current.Level(), target.Level()))
	}

	if !compare.Pointers(current.Signup, target.Signup) {
		changes = append(changes, AccessChangeType{Kind: SignupChanged})
	}

	if !compare.Pointers(current.Signin, target.Signin) {
		changes = append(changes, AccessChangeType{Kind: SigninChanged})
	}

	if !compare.Pointers(current.JWTAlgorithm, target.JWTAlgorithm) {
		changes = append(changes, Other("JWT algorithm changed from %s to %s",
			optional(current.JWTAlgorithm), optional(target.JWTAlgorithm)))
	}

	if !compare.Pointers(current.JWTKey, target.JWTKey) {
		changes = append(changes, AccessChangeType{Kind: JWTKeyChanged})
	}

	if !compare.Pointers(current.JWTURL, target.JWTURL) {
		changes = append(changes, AccessChangeType{Kind: JWTURLChanged})
	}

	if !compare.Pointers(current.IssuerKey, target.IssuerKey) {
		changes = append(changes, AccessChangeType{Kind: IssuerKeyChanged})
	}

	if !compare.Pointers(current.Authenticate, target.Authenticate) {
		changes = append(changes, AccessChangeType{Kind: AuthenticateClauseChanged})
	}

	if !compare.Pointers(current.TokenDuration, target.TokenDuration) ||
		!compare.Pointers(current.SessionDuration, target.SessionDuration) {
		changes = append(changes, AccessChangeType{Kind: DurationChanged})
	}

	if !compare.Pointers(current.BearerFor, target.BearerFor) {
		changes = append(changes, Other("Bearer FOR changed from %s to %s",
			optional(current.BearerFor), optional(target.BearerFor)))
	}

	return changes
}

func optional(s *string) string {
	if s == nil {
		return "none"
	}

	return *s
}
