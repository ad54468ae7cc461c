package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
)

// parseID parses a positive numeric path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// writeLedgerError maps ledger error kinds onto the response envelope:
// validation rejections are 400, a missing reversal target is 404, anything
// else is a storage failure.
func writeLedgerError(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "database error: "+err.Error())
	}
}

// parseBoolQuery interprets an optional true/false query parameter.
func parseBoolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b := v == "true" || v == "1"
	return &b
}
