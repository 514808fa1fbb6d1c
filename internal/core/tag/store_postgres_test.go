// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestApplyAliasDelta_AddThenRemove verifies that adds are applied before
removes, so add={x} + remove={x} in a single call is a net no-op.
*/
func TestApplyAliasDelta_AddThenRemove(t *testing.T) {
	result := applyAliasDelta([]string{"shounen"}, []string{"action"}, []string{"action"})
	assert.Equal(t, []string{"shounen"}, result)
}

/*
TestApplyAliasDelta_Dedupes verifies the alias set is deduplicated and sorted.
*/
func TestApplyAliasDelta_Dedupes(t *testing.T) {
	result := applyAliasDelta([]string{"b", "a"}, []string{"a", "c"}, nil)
	assert.Equal(t, []string{"a", "b", "c"}, result)
}

/*
TestApplyAliasDelta_RemoveOnly verifies plain removal with no matching add.
*/
func TestApplyAliasDelta_RemoveOnly(t *testing.T) {
	result := applyAliasDelta([]string{"a", "b", "c"}, nil, []string{"b"})
	assert.Equal(t, []string{"a", "c"}, result)
}

/*
TestEscapeLike verifies that LIKE metacharacters in a user-supplied search
pattern are escaped before being embedded in an ILIKE clause.
*/
func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
}

/*
TestUnfold_RespectsDepthZero verifies that Depth{0,0} yields a tag with no
parent and no children regardless of the underlying arena shape.
*/
func TestUnfold_RespectsDepthZero(t *testing.T) {
	arena := map[string]*relation{
		"child":  {tag: Tag{ID: "child"}, parentID: "parent", hasParent: true},
		"parent": {tag: Tag{ID: "parent"}, childIDs: []string{"child"}},
	}

	result := unfold(arena, arena["child"], Depth{Parent: 0, Children: 0})

	assert.Nil(t, result.Parent)
	assert.Empty(t, result.Children)
}

/*
TestUnfold_WalksAncestorChain verifies that Parent is populated up to the
requested depth and truncated past it.
*/
func TestUnfold_WalksAncestorChain(t *testing.T) {
	arena := map[string]*relation{
		"grandparent": {tag: Tag{ID: "grandparent"}},
		"parent":      {tag: Tag{ID: "parent"}, parentID: "grandparent", hasParent: true},
		"child":       {tag: Tag{ID: "child"}, parentID: "parent", hasParent: true},
	}

	result := unfold(arena, arena["child"], Depth{Parent: 1, Children: 0})
	assert.NotNil(t, result.Parent)
	assert.Equal(t, "parent", result.Parent.ID)
	assert.Nil(t, result.Parent.Parent)

	result = unfold(arena, arena["child"], Depth{Parent: 2, Children: 0})
	assert.NotNil(t, result.Parent.Parent)
	assert.Equal(t, "grandparent", result.Parent.Parent.ID)
}

/*
TestUnfold_WalksDescendantSubtree verifies that Children is populated up to
the requested depth and siblings retain arena insertion order.
*/
func TestUnfold_WalksDescendantSubtree(t *testing.T) {
	arena := map[string]*relation{
		"root": {tag: Tag{ID: "root"}, childIDs: []string{"a", "b"}},
		"a":    {tag: Tag{ID: "a"}, childIDs: []string{"a1"}},
		"a1":   {tag: Tag{ID: "a1"}},
		"b":    {tag: Tag{ID: "b"}},
	}

	result := unfold(arena, arena["root"], Depth{Parent: 0, Children: 1})
	assert.Len(t, result.Children, 2)
	assert.Empty(t, result.Children[0].Children)

	result = unfold(arena, arena["root"], Depth{Parent: 0, Children: 2})
	assert.Len(t, result.Children[0].Children, 1)
	assert.Equal(t, "a1", result.Children[0].Children[0].ID)
}

/*
TestArenaNode_CreatesOnMiss verifies the get-or-create behavior used while
scanning hydration rows into the working arena.
*/
func TestArenaNode_CreatesOnMiss(t *testing.T) {
	arena := map[string]*relation{}

	first := arenaNode(arena, "x")
	assert.Equal(t, "x", first.tag.ID)

	second := arenaNode(arena, "x")
	assert.Same(t, first, second)
}
