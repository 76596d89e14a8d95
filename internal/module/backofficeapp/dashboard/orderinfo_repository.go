package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

// getOrderInfosRoute is the only provider workflow this service consumes.
const getOrderInfosRoute = "get-order-infos"

type GetOrderInfosRequest struct {
	StartTime  string `json:"StartTime"`
	EndTime    string `json:"EndTime"`
	TicketType string `json:"TicketType"`
}

type OrderInfoRepository interface {
	GetOrderInfos(ctx context.Context, dateRange DateRange, ticketType string) ([]OrderInfo, error)
}

type orderInfoRepository struct {
	baseURL string
	logger  *logrus.Logger
	hc      *http.Client
}

func NewOrderInfoRepository(baseURL string, logger *logrus.Logger, hc *http.Client) OrderInfoRepository {
	return &orderInfoRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		hc:      hc,
	}
}

// GetOrderInfos implements OrderInfoRepository. The provider answers with a
// bare JSON array; an empty or whitespace body counts as an empty result
// set, not a failure.
func (r *orderInfoRepository) GetOrderInfos(ctx context.Context, dateRange DateRange, ticketType string) ([]OrderInfo, error) {
	req := GetOrderInfosRequest{
		StartTime:  dateRange.Start.Format("2006-01-02"),
		EndTime:    dateRange.End.Format("2006-01-02"),
		TicketType: ticketType,
	}

	reqBuff, _ := json.Marshal(req)
	body := bytes.NewBuffer(reqBuff)
	url := fmt.Sprintf("%s/%s", r.baseURL, getOrderInfosRoute)

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while building the order info request")
	}

	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("Accept", "application/json")

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		if isTimeout(err) {
			return nil, errors.New(http.StatusGatewayTimeout, status.TIMEOUT, "the order info provider did not respond within the configured deadline")
		}
		return nil, errors.New(http.StatusBadGateway, status.NETWORK_ERROR, "an error occurred while connecting to the order info provider")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, status.NETWORK_ERROR, "an error occurred while reading the order info response")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("order info provider returned status %d", hresp.StatusCode)
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, status.PROVIDER_ERROR, err.Error())
	}

	if strings.TrimSpace(string(respBody)) == "" {
		return []OrderInfo{}, nil
	}

	var orderInfos []OrderInfo
	if err := json.Unmarshal(respBody, &orderInfos); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, status.MALFORMED_RESPONSE, "the order info provider returned a malformed response body")
	}

	if orderInfos == nil {
		orderInfos = []OrderInfo{}
	}

	return orderInfos, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
