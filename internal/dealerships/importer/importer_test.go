package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeStore struct {
	existing map[string]bool
	created  []Row
	failOn   map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing: map[string]bool{},
		failOn:   map[string]error{},
	}
}

func (s *fakeStore) DealershipExists(_ context.Context, name string) (bool, error) {
	return s.existing[strings.ToLower(name)], nil
}

func (s *fakeStore) CreateRow(_ context.Context, row Row) error {
	if err := s.failOn[row.Name]; err != nil {
		return err
	}
	s.existing[strings.ToLower(row.Name)] = true
	s.created = append(s.created, row)
	return nil
}

func TestImportCreatesAndSkipsDuplicates(t *testing.T) {
	csv := "Company,First,Last,Email\n" +
		"Acme Motors,Jo,Lee,jo@acme.com\n" +
		"Acme Motors,Sam,Diaz,sam@acme.com\n"

	store := newFakeStore()
	summary, err := Import(context.Background(), strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Created != 1 || summary.Skipped != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want created=1 skipped=1 failed=0", summary)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(store.created))
	}
	row := store.created[0]
	if row.Name != "Acme Motors" || row.ContactFirstName != "Jo" || row.ContactEmail != "jo@acme.com" {
		t.Errorf("created row = %+v", row)
	}
}

func TestImportDedupIsCaseInsensitive(t *testing.T) {
	store := newFakeStore()
	store.existing["acme motors"] = true

	csv := "Company\nACME MOTORS\n"
	summary, err := Import(context.Background(), strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Created != 0 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want created=0 skipped=1", summary)
	}
}

func TestImportSkipsRowsWithoutName(t *testing.T) {
	csv := "Company,Email\n" +
		",orphan@example.com\n" +
		"Valley Auto,sales@valleyauto.com\n"

	store := newFakeStore()
	summary, err := Import(context.Background(), strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Created != 1 || summary.Skipped != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want created=1 skipped=1 failed=0", summary)
	}
	if len(summary.Errors) != 0 {
		t.Errorf("nameless row should not produce errors, got %v", summary.Errors)
	}
}

func TestImportHeaderSynonyms(t *testing.T) {
	tests := []struct {
		header string
	}{
		{"Company"},
		{"Dealership Name"},
		{"name"},
		{"DEALERSHIP"},
		{"company_name"},
	}

	for _, tt := range tests {
		store := newFakeStore()
		csv := tt.header + "\nAcme Motors\n"
		summary, err := Import(context.Background(), strings.NewReader(csv), store)
		if err != nil {
			t.Fatalf("header %q: Import returned error: %v", tt.header, err)
		}
		if summary.Created != 1 {
			t.Errorf("header %q: created = %d, want 1", tt.header, summary.Created)
		}
	}
}

func TestImportHandlesQuotedCommas(t *testing.T) {
	csv := "Company,City\n" +
		"\"Smith, Jones & Co Motors\",Austin\n"

	store := newFakeStore()
	summary, err := Import(context.Background(), strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Created != 1 {
		t.Fatalf("summary = %+v, want created=1", summary)
	}
	if store.created[0].Name != "Smith, Jones & Co Motors" {
		t.Errorf("name = %q", store.created[0].Name)
	}
	if store.created[0].City != "Austin" {
		t.Errorf("city = %q", store.created[0].City)
	}
}

func TestImportContinuesPastRowFailures(t *testing.T) {
	store := newFakeStore()
	store.failOn["Bad Dealer"] = errors.New("constraint violation")

	csv := "Company\nBad Dealer\nGood Dealer\n"
	summary, err := Import(context.Background(), strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Created != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want created=1 failed=1", summary)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "constraint violation") {
		t.Errorf("errors = %v", summary.Errors)
	}
}

func TestImportCapsErrorPreview(t *testing.T) {
	store := newFakeStore()
	var b strings.Builder
	b.WriteString("Company\n")
	for i := 0; i < 15; i++ {
		name := "Dealer " + string(rune('A'+i))
		store.failOn[name] = errors.New("boom")
		b.WriteString(name + "\n")
	}

	summary, err := Import(context.Background(), strings.NewReader(b.String()), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.Failed != 15 {
		t.Errorf("Failed = %d, want 15", summary.Failed)
	}
	if len(summary.Errors) != maxErrorMessages {
		t.Errorf("error preview has %d entries, want %d", len(summary.Errors), maxErrorMessages)
	}
}

func TestImportEmptyFile(t *testing.T) {
	store := newFakeStore()
	if _, err := Import(context.Background(), strings.NewReader(""), store); !errors.Is(err, ErrMissingHeader) {
		t.Errorf("err = %v, want ErrMissingHeader", err)
	}
}

func TestImportIgnoresUnknownColumns(t *testing.T) {
	csv := "Company,Favorite Color\nAcme Motors,blue\n"

	store := newFakeStore()
	summary, err := Import(context.Background(), strings.NewReader(csv), store)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if summary.Created != 1 {
		t.Errorf("summary = %+v, want created=1", summary)
	}
}
