package scope

import "github.com/scopeline-dev/scopeline/internal/issue"

// Result is the outcome of resolving one stored reference against a live
// tree: either found with a current start position, or not found.
type Result struct {
	Reference issue.Reference
	Found     bool
	Start     Position
}

// FromPosition walks from the node at pos up through its enclosing named
// scopes and emits the reference chain, innermost first. An empty chain
// means the position is file-scoped.
func FromPosition(tree Tree, pos Position) []issue.Reference {
	scopes := tree.ScopesAt(pos)
	if len(scopes) == 0 {
		return nil
	}
	refs := make([]issue.Reference, 0, len(scopes))
	for _, sc := range scopes {
		refs = append(refs, issue.Reference{Kind: sc.Kind, Name: sc.Name})
	}
	return refs
}

// Resolve looks up each reference in the chain standalone: a reference
// matches wherever a scope of its kind declares its exact name, regardless
// of the other references in the chain. An issue therefore still resolves
// after its function moves to a different enclosing scope, as long as the
// definition itself still matches. Results keep chain order.
func Resolve(tree Tree, chain []issue.Reference) []Result {
	results := make([]Result, 0, len(chain))
	for _, ref := range chain {
		result := Result{Reference: ref}
		if matches := tree.FindScopes(ref.Kind, ref.Name); len(matches) > 0 {
			result.Found = true
			result.Start = matches[0].Start
		}
		results = append(results, result)
	}
	return results
}

// BestPosition picks the annotation position for a resolved chain: the
// innermost found reference wins. The second return is false when nothing
// resolved (or the chain was empty), in which case the caller degrades to
// file-scoped at the top of the file.
func BestPosition(results []Result) (Position, bool) {
	for _, result := range results {
		if result.Found {
			return result.Start, true
		}
	}
	return Position{}, false
}
