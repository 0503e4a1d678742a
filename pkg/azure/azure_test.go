package azure_test

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/reelyactive/barnacles-azureblobstorage/pkg/azure"
)

// base64 of "not-a-real-key"
const accountKey = "bm90LWEtcmVhbC1rZXk="

type request struct {
	method string
	path   string
	query  string
	body   string
}

type fakeBlobService struct {
	sync.Mutex
	requests []request
	handle   func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeBlobService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := ioutil.ReadAll(r.Body)
	f.Lock()
	f.requests = append(f.requests, request{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		body:   string(body),
	})
	f.Unlock()
	f.handle(w, r)
}

var _ = Describe("Azure", func() {
	It("derives the blob endpoint from the account", func() {
		Expect(ServiceURL("reelyactive")).To(Equal("https://reelyactive.blob.core.windows.net"))
	})

	Describe("building clients", func() {
		It("builds a service client from a valid key", func() {
			client, err := NewServiceClient("reelyactive", accountKey)
			Expect(err).ToNot(HaveOccurred())
			Expect(client.URL()).To(HavePrefix("https://reelyactive.blob.core.windows.net"))
		})

		It("fails on a key that is not base64", func() {
			_, err := NewServiceClient("reelyactive", "%%% not base64 %%%")
			Expect(err).To(HaveOccurred())
		})

		It("turns a construction failure into upload failures", func() {
			client := NewBlobClientFromAccount("reelyactive", "%%% not base64 %%%")
			err := client.UploadBlob(context.Background(), "raddec", "1-a-2", []byte("{}"))
			Expect(err).To(MatchError(ContainSubstring("shared key credential")))
		})
	})

	Describe("creating a blob link", func() {
		It("signs a read only https link", func() {
			link, err := CreateBlobLink("reelyactive", accountKey, "raddec", "1600000000000-fee150bada55-3", time.Now().Add(time.Hour))
			Expect(err).ToNot(HaveOccurred())
			Expect(link).To(HavePrefix("https://reelyactive.blob.core.windows.net/raddec/1600000000000-fee150bada55-3?"))
			Expect(link).To(ContainSubstring("sp=r"))
			Expect(link).To(ContainSubstring("spr=https"))
			Expect(link).To(ContainSubstring("sig="))
		})
	})

	Describe("talking to the blob service", func() {
		var (
			fake   *fakeBlobService
			server *httptest.Server
			client *service.Client
			ctx    context.Context
		)

		BeforeEach(func() {
			ctx = context.Background()
			fake = &fakeBlobService{}
			server = httptest.NewServer(fake)
			var err error
			client, err = service.NewClientWithNoCredential(server.URL+"/", nil)
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			server.Close()
		})

		It("uploads the whole content to container then blob", func() {
			fake.handle = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			}

			err := NewBlobClient(client).UploadBlob(ctx, "raddec", "1-aabbccddeeff-2", []byte(`{"transmitterId":"aabbccddeeff"}`))
			Expect(err).ToNot(HaveOccurred())

			Expect(fake.requests).To(HaveLen(1))
			Expect(fake.requests[0].method).To(Equal(http.MethodPut))
			Expect(fake.requests[0].path).To(Equal("/raddec/1-aabbccddeeff-2"))
			Expect(fake.requests[0].body).To(Equal(`{"transmitterId":"aabbccddeeff"}`))
		})

		It("reports a rejected upload", func() {
			fake.handle = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-ms-error-code", "AuthenticationFailed")
				w.WriteHeader(http.StatusForbidden)
			}

			err := NewBlobClient(client).UploadBlob(ctx, "raddec", "1-aabbccddeeff-2", []byte("{}"))
			Expect(err).To(MatchError(ContainSubstring("AuthenticationFailed")))
		})

		It("treats an existing container as success", func() {
			fake.handle = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-ms-error-code", "ContainerAlreadyExists")
				w.WriteHeader(http.StatusConflict)
			}

			Expect(EnsureContainerExists(ctx, client, "raddec")).To(Succeed())
			Expect(fake.requests[0].method).To(Equal(http.MethodPut))
			Expect(fake.requests[0].query).To(ContainSubstring("restype=container"))
		})

		It("passes on other container errors", func() {
			fake.handle = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-ms-error-code", "InvalidResourceName")
				w.WriteHeader(http.StatusBadRequest)
			}

			Expect(EnsureContainerExists(ctx, client, "Not_Valid")).ToNot(Succeed())
		})

		It("lists the latest blobs newest first", func() {
			fake.handle = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(strings.Join([]string{
					`<?xml version="1.0" encoding="utf-8"?>`,
					`<EnumerationResults ServiceEndpoint="` + server.URL + `/" ContainerName="raddec">`,
					`<Blobs>`,
					`<Blob><Name>1600000000001-aa-2</Name></Blob>`,
					`<Blob><Name>1600000000003-aa-2</Name></Blob>`,
					`<Blob><Name>1600000000002-bb-2</Name></Blob>`,
					`</Blobs>`,
					`<NextMarker />`,
					`</EnumerationResults>`,
				}, "")))
			}

			latest, err := LatestBlobs(ctx, client, "raddec", "", 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(latest.ContainerName).To(Equal("raddec"))
			Expect(latest.Blobs).To(Equal([]string{"1600000000003-aa-2", "1600000000002-bb-2"}))
			Expect(fake.requests[0].query).To(ContainSubstring("comp=list"))
		})
	})
})
