package routes

import (
	"net/http"
	"strconv"

	"github.com/openmediawatch/backend/internal/server/middleware"
	"github.com/openmediawatch/backend/internal/util"
	"github.com/openmediawatch/backend/pkg/common"
	"github.com/openmediawatch/backend/pkg/network"

	"github.com/labstack/echo/v4"
)

// GetEchoChambersHandler runs community detection and returns the clusters
// that meet the minimum size, most insular first.
func GetEchoChambersHandler(c echo.Context) error {
	type getEchoChambersResponse struct {
		Message  string               `json:"message,omitempty"`
		Chambers []common.EchoChamber `json:"echo_chambers"`
		Total    int                  `json:"total"`
	}

	minSize := int(util.GetEnvNumeric("NETWORK_MIN_CHAMBER_SIZE", 0))
	if raw := c.QueryParam("min_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, getEchoChambersResponse{
				Message:  "min_size must be a positive integer",
				Chambers: []common.EchoChamber{},
			})
		}
		minSize = parsed
	}

	partitioner := network.NewLouvainPartitioner()
	partitioner.Seed = int64(util.GetEnvNumeric("NETWORK_LOUVAIN_SEED", 42))

	app := c.(*middleware.AppContext).App
	detector := network.NewDetector(app.Net, network.DetectorParams{
		Partitioner: partitioner,
		MinSize:     minSize,
	})
	chambers := detector.Detect()
	if chambers == nil {
		chambers = []common.EchoChamber{}
	}

	return c.JSON(http.StatusOK, getEchoChambersResponse{
		Chambers: chambers,
		Total:    len(chambers),
	})
}
