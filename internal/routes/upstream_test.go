package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
)

// fakeUpstream mimics the inventory REST API in memory.
type fakeUpstream struct {
	mu           sync.Mutex
	labs         map[string]*entities.Laboratory
	global       []entities.Item
	source       string
	createSource string
	nextID       int
	bodies       map[string][]map[string]interface{}
	methods      []string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		labs: map[string]*entities.Laboratory{
			"42": {ID: "42", Name: "Laboratorio de Redes", Location: "Bloque B", Items: []entities.Item{
				{ID: "1", Name: "PC-01", Code: "PC-01", Type: "Computadora", Status: "Operativa", Area: "Fila 1", MaintenanceHistory: []entities.MaintenanceEntry{}},
			}},
		},
		global: []entities.Item{
			{ID: "1", Code: "PC-100", Type: "PC", Status: "Operativa", Area: "Sala 1"},
			{ID: "2", Code: "IMP-7", Type: "Impresora", Status: "Fuera de Servicio", Area: "Sala 2"},
		},
		source:       "MySQL",
		createSource: "MySQL",
		nextID:       10,
		bodies:       map[string][]map[string]interface{}{},
	}
}

func (f *fakeUpstream) reply(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeUpstream) record(r *http.Request, op string) map[string]interface{} {
	f.methods = append(f.methods, op)
	var body map[string]interface{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.bodies[op] = append(f.bodies[op], body)
	return body
}

func (f *fakeUpstream) calls(op string) []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.bodies[op]...)
}

func (f *fakeUpstream) setSource(src string) {
	f.mu.Lock()
	f.source = src
	f.mu.Unlock()
}

func (f *fakeUpstream) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /laboratories/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := make([]entities.Laboratory, 0, len(f.labs))
		for _, l := range f.labs {
			out = append(out, *l)
		}
		f.reply(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /laboratories/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		lab, ok := f.labs[r.PathValue("id")]
		if !ok {
			f.reply(w, http.StatusNotFound, map[string]string{"detail": "Laboratorio no encontrado"})
			return
		}
		f.reply(w, http.StatusOK, lab)
	})

	mux.HandleFunc("PUT /laboratories/{id}/add-item", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		body := f.record(r, "add-item")
		lab := f.labs[r.PathValue("id")]
		f.nextID++
		code, _ := body["code"].(string)
		item := entities.Item{ID: entities.ItemID(strconv.Itoa(f.nextID)), Name: code, Code: code, Type: "Computadora", Status: "Operativa"}
		lab.Items = append(lab.Items, item)
		f.reply(w, http.StatusOK, dto.LabItemResponse{Message: "Item agregado", Item: &item})
	})

	mux.HandleFunc("DELETE /laboratories/{id}/items/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r, "delete-lab-item")
		lab := f.labs[r.PathValue("id")]
		kept := make([]entities.Item, 0, len(lab.Items))
		for _, it := range lab.Items {
			if it.ID.String() != r.PathValue("itemId") {
				kept = append(kept, it)
			}
		}
		lab.Items = kept
		f.reply(w, http.StatusOK, dto.MessageResponse{Message: "Item eliminado"})
	})

	mux.HandleFunc("POST /laboratories/{id}/items/{itemId}/maintenance", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r, "maintenance")
		f.reply(w, http.StatusOK, dto.MessageResponse{Message: "Mantenimiento registrado"})
	})

	mux.HandleFunc("GET /laboratories/items", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.reply(w, http.StatusOK, dto.GlobalItemsResponse{Source: f.source, Data: f.global})
	})

	mux.HandleFunc("POST /laboratories/items", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		body := f.record(r, "create-global")
		f.nextID++
		code, _ := body["code"].(string)
		f.global = append(f.global, entities.Item{ID: entities.ItemID(strconv.Itoa(f.nextID)), Code: code, Status: "Operativa"})
		f.reply(w, http.StatusOK, dto.GlobalWriteResponse{Source: f.createSource, Status: "created"})
	})

	mux.HandleFunc("DELETE /laboratories/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r, "delete-global")
		f.reply(w, http.StatusOK, map[string]string{"source": "MySQL", "status": "deleted"})
	})

	return mux
}
