package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListVisas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/visas" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("addedBy"); got != "alice@example.com" {
			t.Errorf("expected addedBy filter, got '%s'", got)
		}
		json.NewEncoder(w).Encode([]Visa{
			{ID: "1", Country: "Japan", VisaType: "Tourist visa", Fee: 30},
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	visas, err := c.ListVisas(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ListVisas returned error: %v", err)
	}
	if len(visas) != 1 || visas[0].Country != "Japan" {
		t.Errorf("unexpected visas: %+v", visas)
	}
}

func TestGetVisa_ErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Visa not found."})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.GetVisa(context.Background(), "7f9c6f9e-1b9b-4d2f-9b64-444444444444")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Visa not found." {
		t.Errorf("expected gateway message, got '%s'", apiErr.Message)
	}
}

func TestAddVisa(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/visas/add" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var input AddVisaInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if input.Country != "Japan" {
			t.Errorf("expected country 'Japan', got '%s'", input.Country)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Visa added successfully!",
			"visaId":  "generated-id",
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	id, err := c.AddVisa(context.Background(), AddVisaInput{Country: "Japan"})
	if err != nil {
		t.Fatalf("AddVisa returned error: %v", err)
	}
	if id != "generated-id" {
		t.Errorf("expected 'generated-id', got '%s'", id)
	}
}

func TestUpdateVisa(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/visas/visa-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if fields["fee"] != 75.0 {
			t.Errorf("expected fee 75, got %v", fields["fee"])
		}
		if len(fields) != 1 {
			t.Errorf("expected only the sent field, got %v", fields)
		}
		json.NewEncoder(w).Encode(UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	result, err := c.UpdateVisa(context.Background(), "visa-1", map[string]interface{}{"fee": 75.0})
	if err != nil {
		t.Fatalf("UpdateVisa returned error: %v", err)
	}
	if !result.Acknowledged || result.MatchedCount != 1 || result.ModifiedCount != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestListApplications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/applications" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("userEmail"); got != "bob@example.com" {
			t.Errorf("expected userEmail filter, got '%s'", got)
		}
		json.NewEncoder(w).Encode([]Application{
			{ID: "app-1", UserEmail: "bob@example.com", Country: "Japan", Status: "Applied"},
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	applications, err := c.ListApplications(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("ListApplications returned error: %v", err)
	}
	if len(applications) != 1 || applications[0].Status != "Applied" {
		t.Errorf("unexpected applications: %+v", applications)
	}
}

func TestDeleteApplication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/applications/app-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(DeleteResult{Acknowledged: true, DeletedCount: 1})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	result, err := c.DeleteApplication(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("DeleteApplication returned error: %v", err)
	}
	if !result.Acknowledged || result.DeletedCount != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}
