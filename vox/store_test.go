package vox

import "testing"

func TestStoreSaveHas(t *testing.T) {
	s := NewStore()
	k := Key{1, -2, 3}
	if s.Has(k) {
		t.Fatalf("Has before Save\nhave true\nwant false")
	}
	s.Save(k, 120)
	if !s.Has(k) {
		t.Fatalf("Has after Save\nhave false\nwant true")
	}
	if s.Has(Key{1, -2, 4}) {
		t.Fatalf("Has on unsaved neighbor\nhave true\nwant false")
	}
	if c, ok := s.Color(Key{9, 9, 9}); ok || c != 0 {
		t.Fatalf("Color of unsaved key\nhave %d, %v\nwant 0, false", c, ok)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore()
	a, b := Key{0, 0, 0}, Key{1, 0, 0}
	s.Save(a, 10)
	s.Save(b, 20)
	s.Save(a, 30)

	if n := s.Len(); n != 2 {
		t.Fatalf("Len\nhave %d\nwant 2", n)
	}
	if n := s.Order(); n != 3 {
		t.Fatalf("Order\nhave %d\nwant 3", n)
	}
	if c, _ := s.Color(a); c != 30 {
		t.Fatalf("Color after overwrite\nhave %d\nwant 30", c)
	}

	all := s.All()
	want := []Key{a, b, a}
	if len(all) != len(want) {
		t.Fatalf("All\nhave %v\nwant %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("All[%d]\nhave %v\nwant %v", i, all[i], want[i])
		}
	}

	var colors []int
	for _, c := range s.Entries() {
		colors = append(colors, c)
	}
	if len(colors) != 3 || colors[0] != 30 || colors[1] != 20 || colors[2] != 30 {
		t.Fatalf("Entries colors\nhave %v\nwant [30 20 30]", colors)
	}
}

func TestStoreAllIsCopy(t *testing.T) {
	s := NewStore()
	s.Save(Key{1, 1, 1}, 1)
	all := s.All()
	all[0] = Key{}
	if s.All()[0] != (Key{1, 1, 1}) {
		t.Fatalf("All returned the internal slice")
	}
}

func TestKeyOf(t *testing.T) {
	cases := []struct {
		x, y, z float32
		want    Key
	}{
		{1, 2, 3, Key{1, 2, 3}},
		{1.9, -1.9, 0.5, Key{1, -1, 0}},
		{-0.5, 0, -2, Key{0, 0, -2}},
	}
	for _, c := range cases {
		if have := KeyOf(c.x, c.y, c.z); have != c.want {
			t.Fatalf("KeyOf(%v, %v, %v)\nhave %v\nwant %v", c.x, c.y, c.z, have, c.want)
		}
	}
	s := NewStore()
	s.Save(KeyOf(2.7, 0, 0), 5)
	if !s.Has(Key{2, 0, 0}) || s.Has(Key{3, 0, 0}) {
		t.Fatalf("float keys must truncate to the same integer key")
	}
}

func TestStoreDigest(t *testing.T) {
	a, b := NewStore(), NewStore()
	a.Save(Key{0, 0, 0}, 1)
	a.Save(Key{1, 0, 0}, 2)
	b.Save(Key{1, 0, 0}, 2)
	b.Save(Key{0, 0, 0}, 1)
	if a.Digest() == b.Digest() {
		t.Fatalf("Digest must depend on save order")
	}
	c := NewStore()
	c.Save(Key{0, 0, 0}, 1)
	c.Save(Key{1, 0, 0}, 2)
	if a.Digest() != c.Digest() {
		t.Fatalf("Digest of equal stores differs")
	}
}
