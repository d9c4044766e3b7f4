package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/handler"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/curator-library/library/internal/handler/mocks"
)

type response struct {
	expectedCode int
	expectedBody string
}

func serve(t *testing.T, mockBehavior func(r *service_mocks.MockLibraryService), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	c := gomock.NewController(t)
	svc := service_mocks.NewMockLibraryService(c)
	mockBehavior(svc)

	h := handler.New(svc, zap.NewNop())
	e := h.NewRouter()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, http.NoBody)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func checkBody(t *testing.T, want string, w *httptest.ResponseRecorder) {
	t.Helper()
	if want == "" {
		require.Empty(t, strings.TrimSpace(w.Body.String()))
		return
	}
	require.JSONEq(t, want, w.Body.String())
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	w := serve(t, func(r *service_mocks.MockLibraryService) {}, http.MethodGet, "/manage/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestHandler_SearchBooks(t *testing.T) {
	t.Parallel()
	isbn := "9780262033848"
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		target       string
		mockBehavior func(r *service_mocks.MockLibraryService)
		response     response
	}{
		{
			name:   "ok",
			target: "/api/v1/curators/c1/books/search?isbn=" + isbn,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					FindByCuratorAndIsbn(gomock.Any(), "c1", isbn).
					Return([]model.BookItem{{
						ID:           "b1",
						CuratorID:    "c1",
						Title:        "Introduction to Algorithms",
						Author:       "Thomas H. Cormen",
						ISBN:         &isbn,
						Availability: model.AvailabilityAvailable,
						CreatedAt:    created,
					}}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"books":[{"id":"b1","curatorId":"c1","title":"Introduction to Algorithms",
					"author":"Thomas H. Cormen","publisher":"","publishDate":"","pagination":0,
					"isbn":"9780262033848","availability":"AVAILABLE","createdAt":"2024-01-01T00:00:00Z"}]}`,
			},
		},
		{
			name:   "no results",
			target: "/api/v1/curators/c1/books/search?isbn=" + isbn,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().FindByCuratorAndIsbn(gomock.Any(), "c1", isbn).Return([]model.BookItem{}, nil)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"No books found matching the criteria"}`,
			},
		},
		{
			name:         "missing isbn",
			target:       "/api/v1/curators/c1/books/search",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"curatorId and isbn are required"}`,
			},
		},
		{
			name:   "store failure",
			target: "/api/v1/curators/c1/books/search?isbn=" + isbn,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					FindByCuratorAndIsbn(gomock.Any(), "c1", isbn).
					Return(nil, errs.Storage(errors.New("connection refused"), "FindBooks"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"storage unavailable, try again later"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, http.MethodGet, tt.target, "")
			require.Equal(t, tt.response.expectedCode, w.Code)
			checkBody(t, tt.response.expectedBody, w)
		})
	}
}

func TestHandler_SubmitBorrowRequest(t *testing.T) {
	t.Parallel()
	const body = `{"bookId":"b1","name":"Ada","email":"ada@example.com","phone":"",
		"deliveryAddress":"1 Main St","borrowDate":"2024-01-01T00:00:00Z","returnDate":"2024-01-15T00:00:00Z"}`
	borrowDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	expectSubmit := func(r *service_mocks.MockLibraryService, ret model.BorrowRequest, err error) {
		r.EXPECT().
			SubmitBorrowRequest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req model.SubmitBorrowRequest) (model.BorrowRequest, error) {
				require.Equal(t, "b1", req.BookID)
				require.Equal(t, "c1", req.CuratorID)
				require.Equal(t, "1 Main St", req.DeliveryAddress)
				require.True(t, borrowDate.Equal(req.BorrowDate))
				require.True(t, returnDate.Equal(req.ReturnDate))
				return ret, err
			})
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior func(r *service_mocks.MockLibraryService)
		response     response
	}{
		{
			name: "created",
			body: body,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				expectSubmit(r, model.BorrowRequest{ID: "br1", Status: model.BorrowStatusPending}, nil)
			},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name: "book taken",
			body: body,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				expectSubmit(r, model.BorrowRequest{}, errors.Wrap(errs.ErrConflict, "book b1 is REQUESTED"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book b1 is REQUESTED: book is no longer available"}`,
			},
		},
		{
			name: "unknown book",
			body: body,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				expectSubmit(r, model.BorrowRequest{}, errors.Wrap(errs.ErrNotFound, "LockBook"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"LockBook: not found"}`,
			},
		},
		{
			name:         "blank address",
			body:         strings.Replace(body, `"1 Main St"`, `"  "`, 1),
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response:     response{expectedCode: http.StatusBadRequest},
		},
		{
			name:         "malformed",
			body:         `{"bookId":`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid request body"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, http.MethodPost, "/api/v1/curators/c1/borrow-requests", tt.body)
			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				checkBody(t, tt.response.expectedBody, w)
			}
		})
	}
}

func TestHandler_Transitions(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name         string
		target       string
		mockBehavior func(r *service_mocks.MockLibraryService)
		expectedCode int
	}{
		{
			name:   "approve",
			target: "/api/v1/borrow-requests/br1/approve",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Decide(gomock.Any(), "br1", model.OutcomeApprove).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "reject settled",
			target: "/api/v1/borrow-requests/br1/reject",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Decide(gomock.Any(), "br1", model.OutcomeReject).Return(errors.Wrap(errs.ErrNotFound, "no pending borrow request br1"))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "return",
			target: "/api/v1/borrow-requests/br1/return",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().RecordReturn(gomock.Any(), "br1").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "approve while the book is busy",
			target: "/api/v1/borrow-requests/br1/approve",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Decide(gomock.Any(), "br1", model.OutcomeApprove).Return(errors.Wrap(context.DeadlineExceeded, "LockBook"))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:   "return not approved",
			target: "/api/v1/borrow-requests/br1/return",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().RecordReturn(gomock.Any(), "br1").Return(errors.Wrap(errs.ErrInvalidState, "borrow request br1 is PENDING"))
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, http.MethodPost, tt.target, "")
			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHandler_UpdatePublicNotice(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name         string
		body         string
		mockBehavior func(r *service_mocks.MockLibraryService)
		expectedCode int
	}{
		{
			name: "ok",
			body: `{"text":"closed on mondays"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					UpdatePublicNotice(gomock.Any(), model.UpdatePublicNoticeRequest{CuratorID: "c1", Text: "closed on mondays"}).
					Return(model.Curator{ID: "c1", PublicNotice: "closed on mondays", Version: 2}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "too long",
			body: `{"text":"` + strings.Repeat("a", 201) + `"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					UpdatePublicNotice(gomock.Any(), gomock.Any()).
					Return(model.Curator{}, errs.Validation("public notice must be at most 200 characters"))
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "stale version",
			body: `{"text":"x","version":1}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					UpdatePublicNotice(gomock.Any(), gomock.Any()).
					Return(model.Curator{}, errors.Wrap(errs.ErrConflict, "public notice was modified concurrently"))
			},
			expectedCode: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, http.MethodPut, "/api/v1/curators/c1/public-notice", tt.body)
			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHandler_AddBook(t *testing.T) {
	t.Parallel()
	t.Run("unknown curator", func(t *testing.T) {
		t.Parallel()
		w := serve(t, func(r *service_mocks.MockLibraryService) {
			r.EXPECT().
				AddBook(gomock.Any(), model.AddBookRequest{CuratorID: "c9", Title: "SICP"}).
				Return(model.BookItem{}, errs.Validation("unknown curator"))
		}, http.MethodPost, "/api/v1/curators/c9/books", `{"title":"SICP"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		checkBody(t, `{"message":"unknown curator: invalid input"}`, w)
	})
	t.Run("bad isbn", func(t *testing.T) {
		t.Parallel()
		w := serve(t, func(r *service_mocks.MockLibraryService) {},
			http.MethodPost, "/api/v1/curators/c1/books", `{"title":"SICP","isbn":"97802-abc"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Lists(t *testing.T) {
	t.Parallel()
	t.Run("borrowings", func(t *testing.T) {
		t.Parallel()
		w := serve(t, func(r *service_mocks.MockLibraryService) {
			r.EXPECT().ListBorrowRequests(gomock.Any(), "c1").Return([]model.BorrowRequestView{}, nil)
		}, http.MethodGet, "/api/v1/curators/c1/borrow-requests", "")
		require.Equal(t, http.StatusOK, w.Code)
		checkBody(t, `{"borrowings":[]}`, w)
	})
	t.Run("book requests", func(t *testing.T) {
		t.Parallel()
		w := serve(t, func(r *service_mocks.MockLibraryService) {
			r.EXPECT().ListAcquisitionRequests(gomock.Any(), "c1").Return([]model.AcquisitionRequest{}, nil)
		}, http.MethodGet, "/api/v1/curators/c1/book-requests", "")
		require.Equal(t, http.StatusOK, w.Code)
		checkBody(t, `{"bookRequests":[]}`, w)
	})
}

func TestHandler_LookupMetadata(t *testing.T) {
	t.Parallel()
	w := serve(t, func(r *service_mocks.MockLibraryService) {
		r.EXPECT().
			LookupMetadata(gomock.Any(), "9780000000000").
			Return(model.Metadata{ISBN: "9780000000000", Authors: []string{}})
	}, http.MethodGet, "/api/v1/isbn/9780000000000", "")
	require.Equal(t, http.StatusOK, w.Code)
	checkBody(t, `{"isbn":"9780000000000","title":"","authors":[],"publisher":"","publishDate":"","pagination":0}`, w)
}
