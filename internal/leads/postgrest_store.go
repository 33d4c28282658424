package leads

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/wolfman30/lead-manager/internal/supabase"
)

type restClient interface {
	Select(ctx context.Context, table string, params url.Values, out any) error
	Insert(ctx context.Context, table string, rows any, out any) error
	Delete(ctx context.Context, table string, params url.Values) error
}

// PostgRESTStore reads and writes the hosted Supabase leads table.
type PostgRESTStore struct {
	client restClient
	table  string
}

var _ Store = (*PostgRESTStore)(nil)

// NewPostgRESTStore binds the shared Supabase client to a table.
func NewPostgRESTStore(client *supabase.Client, table string) *PostgRESTStore {
	if client == nil {
		panic("leads: supabase client required")
	}
	return newPostgRESTStoreWithClient(client, table)
}

func newPostgRESTStoreWithClient(client restClient, table string) *PostgRESTStore {
	if strings.TrimSpace(table) == "" {
		table = "leads"
	}
	return &PostgRESTStore{client: client, table: table}
}

// ListOrdered is select=* ordered by createdat descending.
func (s *PostgRESTStore) ListOrdered(ctx context.Context) ([]Lead, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "createdat.desc")

	var rows []Lead
	if err := s.client.Select(ctx, s.table, params, &rows); err != nil {
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	if rows == nil {
		rows = []Lead{}
	}
	return rows, nil
}

// FindIDByEmail selects at most one id with an exact email match.
func (s *PostgRESTStore) FindIDByEmail(ctx context.Context, email string) (string, bool, error) {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("email", supabase.Eq(email))
	params.Set("limit", "1")

	var rows []struct {
		ID string `json:"id"`
	}
	if err := s.client.Select(ctx, s.table, params, &rows); err != nil {
		return "", false, fmt.Errorf("leads: email probe failed: %w", err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].ID, true, nil
}

// Insert posts a single row and returns the stored representation.
func (s *PostgRESTStore) Insert(ctx context.Context, form LeadFormData) (*Lead, error) {
	var rows []Lead
	if err := s.client.Insert(ctx, s.table, []LeadFormData{form}, &rows); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	if len(rows) != 1 {
		return nil, errors.New(msgCreateFailed)
	}
	return &rows[0], nil
}

// DeleteByID deletes where id equals id.
func (s *PostgRESTStore) DeleteByID(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", supabase.Eq(id))
	if err := s.client.Delete(ctx, s.table, params); err != nil {
		return fmt.Errorf("leads: delete failed: %w", err)
	}
	return nil
}
