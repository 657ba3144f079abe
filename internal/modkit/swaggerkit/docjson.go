package swaggerkit

import (
	"encoding/json"
	"net/http"
)

// SpecMutator lets modules tweak the served swagger spec
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// docReader is a seam so tests can inject a different spec
var docReader = func() string { return baseSpec }

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON serves the maintained spec and lets modules adjust details
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		for _, m := range mutators {
			m(spec)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// baseSpec is maintained by hand alongside the handlers it documents
const baseSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "QuakeWatch API", "version": "1.0.0"},
  "servers": [{"url": "/"}],
  "paths": {
    "/earthquakes": {
      "get": {
        "summary": "List earthquakes with optional filters",
        "parameters": [
          {"name": "min_magnitude", "in": "query", "schema": {"type": "number"}},
          {"name": "max_magnitude", "in": "query", "schema": {"type": "number"}},
          {"name": "start_time", "in": "query", "schema": {"type": "string", "format": "date-time"}},
          {"name": "end_time", "in": "query", "schema": {"type": "string", "format": "date-time"}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500}},
          {"name": "offset", "in": "query", "schema": {"type": "integer", "minimum": 0}}
        ],
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EarthquakeList"}}}
          },
          "400": {
            "description": "Bad Request",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}
          }
        }
      }
    },
    "/earthquakes/{id}": {
      "get": {
        "summary": "Fetch a single earthquake by id",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}
        ],
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Earthquake"}}}
          },
          "404": {
            "description": "Not Found",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}
          }
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Liveness probe",
        "responses": {"200": {"description": "OK"}}
      }
    }
  },
  "components": {
    "schemas": {
      "Earthquake": {
        "type": "object",
        "properties": {
          "id": {"type": "string", "format": "uuid"},
          "usgs_id": {"type": "string", "nullable": true},
          "magnitude": {"type": "number"},
          "location": {"type": "string"},
          "occurred_at": {"type": "string", "format": "date-time"},
          "latitude": {"type": "number"},
          "longitude": {"type": "number"},
          "depth_km": {"type": "number"}
        }
      },
      "EarthquakeList": {
        "type": "object",
        "properties": {
          "data": {"type": "array", "items": {"$ref": "#/components/schemas/Earthquake"}},
          "pagination": {
            "type": "object",
            "properties": {
              "limit": {"type": "integer"},
              "offset": {"type": "integer"},
              "total": {"type": "integer"}
            }
          }
        }
      },
      "ErrorResponse": {
        "type": "object",
        "properties": {
          "status_code": {"type": "integer"},
          "status": {"type": "string"},
          "code": {"type": "integer"},
          "error": {"type": "string"},
          "request_id": {"type": "string"}
        },
        "required": ["status_code", "status"]
      }
    }
  }
}`
