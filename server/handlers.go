package server

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gsarmaonline/modelloader/core"
	"github.com/gsarmaonline/modelloader/orm"
	"go.uber.org/zap"
)

type (
	ModelSummary struct {
		Name            string           `json:"name"`
		Table           string           `json:"table"`
		Attributes      []string         `json:"attributes"`
		ClassMethods    []string         `json:"class_methods,omitempty"`
		InstanceMethods []string         `json:"instance_methods,omitempty"`
		Definition      *core.Definition `json:"definition,omitempty"`
	}

	methodLister interface {
		ClassMethods() []string
		InstanceMethods() []string
	}

	recordFinder interface {
		FindAll(ctx context.Context, conds ...any) ([]*orm.Instance, error)
		ParseValue(column, raw string) (any, error)
	}
)

func summarize(m core.Model) ModelSummary {
	summary := ModelSummary{
		Name:       m.Name(),
		Table:      m.TableName(),
		Attributes: m.Attributes(),
	}
	if methods, ok := m.(methodLister); ok {
		summary.ClassMethods = methods.ClassMethods()
		summary.InstanceMethods = methods.InstanceMethods()
	}
	return summary
}

// ListModelsHandler returns every loaded model sorted by name
func (srv *Server) ListModelsHandler(c *gin.Context) {
	names := srv.models.Names()
	sort.Strings(names)

	models := make([]ModelSummary, 0, len(names))
	for _, name := range names {
		models = append(models, summarize(srv.models[name]))
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

// GetModelHandler returns a single model with the definition it was built from
func (srv *Server) GetModelHandler(c *gin.Context) {
	m, ok := srv.models[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
		return
	}

	summary := summarize(m)
	summary.Definition = m.Definition()
	c.JSON(http.StatusOK, gin.H{"model": summary})
}

// ListRecordsHandler returns the stored rows of a model. Query parameters
// naming an attribute filter by equality, converted to the column's type.
func (srv *Server) ListRecordsHandler(c *gin.Context) {
	name := c.Param("name")
	m, ok := srv.models[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
		return
	}

	finder, ok := m.(recordFinder)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "model does not support queries"})
		return
	}

	attrs := make(map[string]bool)
	for _, attr := range m.Attributes() {
		attrs[attr] = true
	}

	var conds []any
	if query := c.Request.URL.Query(); len(query) > 0 {
		filter := make(map[string]any, len(query))
		for key := range query {
			if !attrs[key] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown attribute " + key})
				return
			}
			value, err := finder.ParseValue(key, query.Get(key))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter[key] = value
		}
		conds = append(conds, filter)
	}

	rows, err := finder.FindAll(c.Request.Context(), conds...)
	if err != nil {
		srv.log.Error("failed to fetch records", zap.String("model", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}

	records := make([]map[string]any, len(rows))
	for i, row := range rows {
		records[i] = row.Values()
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
