package api

import (
	"reflect"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/veesix-networks/hostnet/pkg/hieradata"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/version"
)

func snapshotSchema() *openapi3.SchemaRef {
	return schemaFromType(reflect.TypeOf(topology.Snapshot{}))
}

func buildOpenAPISpec() *openapi3.T {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "hostnet API",
			Description: "Resolves host network topology into interface, route and address resources",
			Version:     version.Version,
		},
		Paths: &openapi3.Paths{},
		Tags: openapi3.Tags{
			{Name: "Hosts", Description: "Inventory hosts"},
			{Name: "Resolve", Description: "Resource generation"},
			{Name: "General", Description: "General API endpoints"},
		},
	}

	errorContent := openapi3.NewContentWithJSONSchemaRef(schemaFromType(reflect.TypeOf(ErrorResponse{})))
	hostParam := openapi3.Parameters{{
		Value: &openapi3.Parameter{
			Name:     "host",
			In:       "path",
			Required: true,
			Schema:   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
		},
	}}
	resolved := openapi3.WithStatus(200, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: ptr("Generated resources"),
			Content:     openapi3.NewContentWithJSONSchemaRef(schemaFromType(reflect.TypeOf(ResolveResponse{}))),
		},
	})
	notFound := openapi3.WithStatus(404, &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: ptr("Host not in inventory"), Content: errorContent},
	})
	unprocessable := openapi3.WithStatus(422, &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: ptr("Topology cannot be resolved"), Content: errorContent},
	})

	spec.Paths.Set("/api/hosts", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"Hosts"},
			Summary:     "List inventory hosts",
			OperationID: "listHosts",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, &openapi3.ResponseRef{
					Value: &openapi3.Response{
						Description: ptr("Hostnames in inventory order"),
						Content:     openapi3.NewContentWithJSONSchemaRef(schemaFromType(reflect.TypeOf(HostsResponse{}))),
					},
				}),
			),
		},
	})

	stored := openapi3.WithStatus(204, &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: ptr("Inventory updated")},
	})
	readOnly := openapi3.WithStatus(405, &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: ptr("Inventory is read-only"), Content: errorContent},
	})

	spec.Paths.Set("/api/hosts/{host}", &openapi3.PathItem{
		Put: &openapi3.Operation{
			Tags:        []string{"Hosts"},
			Summary:     "Store a host snapshot in the inventory",
			OperationID: "putHost",
			Parameters:  hostParam,
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content:  openapi3.NewContentWithJSONSchemaRef(snapshotSchema()),
				},
			},
			Responses: openapi3.NewResponses(stored, readOnly, unprocessable),
		},
		Delete: &openapi3.Operation{
			Tags:        []string{"Hosts"},
			Summary:     "Remove a host from the inventory",
			OperationID: "deleteHost",
			Parameters:  hostParam,
			Responses:   openapi3.NewResponses(stored, notFound, readOnly),
		},
	})

	spec.Paths.Set("/api/hosts/{host}/resolve", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"Resolve"},
			Summary:     "Resolve an inventory host",
			OperationID: "resolveHost",
			Parameters:  hostParam,
			Responses:   openapi3.NewResponses(resolved, notFound, unprocessable),
		},
	})

	spec.Paths.Set("/api/hosts/{host}/interfaces", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"Hosts"},
			Summary:     "Show interface classification for a host",
			OperationID: "hostInterfaces",
			Parameters:  hostParam,
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, &openapi3.ResponseRef{
					Value: &openapi3.Response{
						Description: ptr("Interfaces in configuration order"),
						Content:     openapi3.NewContentWithJSONSchemaRef(schemaFromType(reflect.TypeOf(InterfacesResponse{}))),
					},
				}),
				notFound,
				unprocessable,
			),
		},
	})

	spec.Paths.Set("/api/resolve", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"Resolve"},
			Summary:     "Resolve a posted topology snapshot",
			OperationID: "resolveSnapshot",
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content:  openapi3.NewContentWithJSONSchemaRef(snapshotSchema()),
				},
			},
			Responses: openapi3.NewResponses(resolved, unprocessable),
		},
	})

	spec.Paths.Set("/api/openapi.json", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"General"},
			Summary:     "This document",
			OperationID: "openapi",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, &openapi3.ResponseRef{
					Value: &openapi3.Response{Description: ptr("OpenAPI 3 document")},
				}),
			),
		},
	})

	spec.Paths.Set("/api/status", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"General"},
			Summary:     "API server status",
			OperationID: "status",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, &openapi3.ResponseRef{
					Value: &openapi3.Response{
						Description: ptr("Server state"),
						Content:     openapi3.NewContentWithJSONSchemaRef(schemaFromType(reflect.TypeOf(Status{}))),
					},
				}),
			),
		},
	})

	return spec
}

var resourceConfigType = reflect.TypeOf(hieradata.Config{})

func schemaFromType(t reflect.Type) *openapi3.SchemaRef {
	if t == nil {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == reflect.TypeOf(time.Time{}) {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}}
	}

	switch t.Kind() {
	case reflect.Bool:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}}

	case reflect.Float32, reflect.Float64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}}}

	case reflect.String:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "byte"}}
		}
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:     &openapi3.Types{"array"},
				Items:    schemaFromType(t.Elem()),
				Nullable: true,
			},
		}

	case reflect.Map:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:                 &openapi3.Types{"object"},
				AdditionalProperties: openapi3.AdditionalProperties{Schema: schemaFromType(t.Elem())},
				Nullable:             true,
			},
		}

	case reflect.Struct:
		return structToSchema(t)
	}

	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
}

// structToSchema marks every field serialised without omitempty as required.
func structToSchema(t reflect.Type) *openapi3.SchemaRef {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	properties := openapi3.Schemas{}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		omitempty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					omitempty = true
				}
			}
		}

		propSchema := schemaFromType(field.Type)
		if field.Type.Kind() == reflect.Ptr {
			propSchema.Value.Nullable = true
		}

		properties[name] = propSchema
		if !omitempty && t != resourceConfigType {
			required = append(required, name)
		}
	}

	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:       &openapi3.Types{"object"},
			Properties: properties,
			Required:   required,
		},
	}
}

func ptr(s string) *string {
	return &s
}
