package tests

import (
	"context"
	"errors"
	"github.com/samber/lo"
	"github.com/vacsdata/sj-parser/internal/clients/sj"
	"time"
)

type mockSJClient struct {
	token     string
	pages     map[int][]sj.Listing
	authErr   error
	listErr   error
	authCalls int
}

func (m *mockSJClient) Authenticate(_ context.Context, _ sj.Credentials) (string, error) {
	m.authCalls++
	if m.authErr != nil {
		return "", m.authErr
	}
	return m.token, nil
}

func (m *mockSJClient) GetListings(_ context.Context, token string,
	parameters sj.SearchParameters) ([]sj.Listing, error) {

	if m.listErr != nil {
		return nil, m.listErr
	}
	if token != m.token {
		return nil, errors.New("unexpected token")
	}
	return m.pages[parameters.Page], nil
}

func sampleListing(id, clientID int64, profession string) sj.Listing {
	return sj.Listing{
		ID:          id,
		ClientID:    clientID,
		Profession:  profession,
		Town:        &sj.TitledValue{Title: "Новосибирск"},
		Link:        "https://www.superjob.ru/vakansii/test.html",
		PublishedAt: time.Date(2023, 1, 1, 12, 0, 0, 0, time.Local).Unix(),
		PublishedTo: time.Date(2023, 2, 1, 12, 0, 0, 0, time.Local).Unix(),
		ArchivedAt:  time.Date(2023, 2, 1, 12, 0, 0, 0, time.Local).Unix(),
		Client: &sj.ClientBlock{
			ID:    lo.ToPtr(clientID),
			Title: lo.ToPtr("Работодатель"),
		},
	}
}
