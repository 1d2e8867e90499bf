package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/rolodex/internal/customer/domain"
)

func (s *Server) AddAddress(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req customerdomain.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	address, err := s.customerSvc.AddAddress(c.Request.Context(), customerID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": address.ID})
}

func (s *Server) UpdateAddress(c *gin.Context) {
	addressID, err := parseIDParam(c, "addressId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req customerdomain.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	changes, err := s.customerSvc.UpdateAddress(c.Request.Context(), addressID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changes": changes})
}

func (s *Server) DeleteAddress(c *gin.Context) {
	addressID, err := parseIDParam(c, "addressId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	changes, err := s.customerSvc.DeleteAddress(c.Request.Context(), addressID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changes": changes})
}
