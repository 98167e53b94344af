package handlers

import (
	"encoding/json"
	"net/http"
)

type customerRequest struct {
	Name string `json:"name"`
}

func GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := st().ListCustomers()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	json.NewDecoder(r.Body).Decode(&req)
	customer, err := st().CreateCustomer(req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	customer, err := st().GetCustomer(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req customerRequest
	json.NewDecoder(r.Body).Decode(&req)
	customer, err := st().UpdateCustomer(id, req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := st().DeleteCustomer(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCustomerSites returns a customer's sites ordered by name.
func ListCustomerSites(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if _, err := st().GetCustomer(id); err != nil {
		writeStoreError(w, err)
		return
	}
	sites, err := st().ListSitesByCustomer(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}
