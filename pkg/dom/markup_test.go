package dom

import "testing"

func TestFindHelpers(t *testing.T) {
	nodes, err := ParseFragment(`<div class="a b" id="x"><span class="c">t</span></div>`)
	if err != nil {
		t.Fatal(err)
	}
	root := nodes[0]

	if n := FindByClass(root, "b"); n != root {
		t.Error("FindByClass(b) should match the root")
	}
	span := FindByClass(root, "c")
	if span == nil || span.Data != "span" {
		t.Fatalf("FindByClass(c) = %v", span)
	}
	if FindByClass(root, "ab") != nil {
		t.Error("class matching must be per token")
	}
	if FindByID(root, "x") != root {
		t.Error("FindByID(x) mismatch")
	}

	out, err := OuterHTML(span)
	if err != nil || out != `<span class="c">t</span>` {
		t.Errorf("OuterHTML = %q, %v", out, err)
	}

	if v, ok := Attr(root, "id"); !ok || v != "x" {
		t.Errorf("Attr(id) = %q, %v", v, ok)
	}
	if _, ok := Attr(nil, "id"); ok {
		t.Error("Attr(nil) reported ok")
	}
}

func TestInnerHTML(t *testing.T) {
	nodes, err := ParseFragment(`<main id="m"><p>a</p> <b>c</b></main>`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := InnerHTML(FindByID(nodes[0], "m"))
	if err != nil {
		t.Fatal(err)
	}
	if got != `<p>a</p> <b>c</b>` {
		t.Errorf("InnerHTML() = %q", got)
	}
}
