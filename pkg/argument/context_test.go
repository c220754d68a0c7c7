package argument

import (
	"strings"
	"testing"
)

func TestContextDigestEmpty(t *testing.T) {
	if got := ContextDigest(NewGraph()); got != "No previous components found." {
		t.Errorf("ContextDigest(empty) = %q", got)
	}
}

func TestContextDigest(t *testing.T) {
	g := NewGraph()
	longText := strings.Repeat("a", 150)
	g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "short claim", Page: 1})
	g.AddNode(Component{ID: "P2-E1", Type: "Evidence", Text: longText, Page: 2})
	g.AddEdge(Relation{Source: "P1-C1", Target: "P2-E1", Relation: "supported_by", Page: 2})

	digest := ContextDigest(g)

	if !strings.Contains(digest, "P1-C1 [Claim] (page 1): short claim") {
		t.Errorf("digest missing short component line:\n%s", digest)
	}
	if !strings.Contains(digest, strings.Repeat("a", 100)+"...") {
		t.Errorf("long text not truncated to 100 chars:\n%s", digest)
	}
	if strings.Contains(digest, strings.Repeat("a", 101)) {
		t.Errorf("digest leaked more than 100 chars of text:\n%s", digest)
	}
	if !strings.Contains(digest, "Total components so far: 2") {
		t.Errorf("digest missing component total:\n%s", digest)
	}
	if !strings.Contains(digest, "Total relations so far: 1") {
		t.Errorf("digest missing relation total:\n%s", digest)
	}
}
