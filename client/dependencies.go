package client

import (
	"context"
	"net/http"
	"strconv"

	"motorcycles-backend/sales"
)

// CheckDependencies fetches every sale and scans it for references to the
// entity. A failed fetch yields a report that forbids deletion plus the error.
func (c *Client) CheckDependencies(ctx context.Context, kind sales.Kind, id uint) (sales.DependencyReport, error) {
	list, err := c.Sales().List(ctx)
	if err != nil {
		return sales.DependencyReport{
			CanDelete:    false,
			Message:      "error checking dependencies",
			Dependencies: []string{},
		}, err
	}
	return sales.CheckDependencies(list, kind, id), nil
}

// ServerDependencies asks the API to run the same check next to the data.
func (c *Client) ServerDependencies(ctx context.Context, kind sales.Kind, id uint) (sales.DependencyReport, error) {
	var report sales.DependencyReport
	path := "/api/" + string(kind) + "s/" + strconv.FormatUint(uint64(id), 10) + "/dependencies"
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return sales.DependencyReport{CanDelete: false, Message: "error checking dependencies", Dependencies: []string{}}, err
	}
	if report.Dependencies == nil {
		report.Dependencies = []string{}
	}
	return report, nil
}
