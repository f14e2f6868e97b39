package platform

import "testing"

func TestLookup(t *testing.T) {
	desc, ok := Lookup("netflix")
	if !ok {
		t.Fatal("netflix should be a known platform")
	}
	if desc.DisplayName != "Netflix" {
		t.Errorf("DisplayName = %q, want Netflix", desc.DisplayName)
	}
	if !desc.Subscription {
		t.Error("netflix should be a subscription platform")
	}

	if _, ok := Lookup("blockbuster_online"); ok {
		t.Error("unknown key should miss")
	}
}

func TestLookupWebSearch(t *testing.T) {
	desc, ok := Lookup(WebSearchID)
	if !ok {
		t.Fatal("web_search pseudo-platform must be resolvable")
	}
	if desc.SearchURLTemplate == "" {
		t.Error("web_search needs a search URL template")
	}
}

func TestAllExcludesWebSearch(t *testing.T) {
	for _, desc := range All() {
		if desc.ID == WebSearchID {
			t.Fatal("All() must not expose the web_search pseudo-platform")
		}
	}
}

func TestAllSortedByPriority(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("registry is empty")
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Priority >= all[i].Priority {
			t.Errorf("All() not strictly ordered at %d: %d >= %d",
				i, all[i-1].Priority, all[i].Priority)
		}
	}
}

func TestUniquePriorities(t *testing.T) {
	seen := map[int]string{}
	for key, desc := range registry {
		if other, dup := seen[desc.Priority]; dup {
			t.Errorf("priority %d shared by %s and %s", desc.Priority, key, other)
		}
		seen[desc.Priority] = key
	}
}

func TestDescriptorIDsMatchKeys(t *testing.T) {
	for key, desc := range registry {
		if desc.ID != key {
			t.Errorf("registry[%q].ID = %q", key, desc.ID)
		}
	}
}
