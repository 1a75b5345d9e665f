package siri

import (
	"encoding/xml"
	"fmt"
	"time"
)

const (
	siriVersion = "2.0"

	namespaceSiri  = "http://www.siri.org.uk/siri"
	namespaceACSB  = "http://www.ifopt.org.uk/acsb"
	namespaceIFOPT = "http://www.ifopt.org.uk/ifopt"
	namespaceDatex = "http://datex2.eu/schema/2_0RC1/2_0"
)

type Request struct {
	XMLName xml.Name `xml:"Siri"`

	Namespace      string `xml:"xmlns,attr"`
	NamespaceACSB  string `xml:"xmlns:ns2,attr"`
	NamespaceIFOPT string `xml:"xmlns:ns3,attr"`
	NamespaceDatex string `xml:"xmlns:ns4,attr"`
	Version        string `xml:"version,attr"`

	ServiceRequest ServiceRequest
}

type ServiceRequest struct {
	RequestTimestamp  string
	RequestorRef      string
	MessageIdentifier string

	StopMonitoringRequest StopMonitoringRequest
}

type StopMonitoringRequest struct {
	Version string `xml:"version,attr"`

	RequestTimestamp  string
	MessageIdentifier string
	PreviewInterval   string `xml:",omitempty"`
	MonitoringRef     string
	MaximumStopVisits int `xml:",omitempty"`
}

type RequestOptions struct {
	RequestorRef      string
	MessageIdentifier string
	PreviewInterval   string
	MaximumStopVisits int
	Timestamp         time.Time
}

func NewStopMonitoringRequest(monitoringRef string, options RequestOptions) *Request {
	timestamp := options.Timestamp.Format(time.RFC3339)

	return &Request{
		Namespace:      namespaceSiri,
		NamespaceACSB:  namespaceACSB,
		NamespaceIFOPT: namespaceIFOPT,
		NamespaceDatex: namespaceDatex,
		Version:        siriVersion,

		ServiceRequest: ServiceRequest{
			RequestTimestamp:  timestamp,
			RequestorRef:      options.RequestorRef,
			MessageIdentifier: options.MessageIdentifier,

			StopMonitoringRequest: StopMonitoringRequest{
				Version:           siriVersion,
				RequestTimestamp:  timestamp,
				MessageIdentifier: options.MessageIdentifier,
				PreviewInterval:   options.PreviewInterval,
				MonitoringRef:     monitoringRef,
				MaximumStopVisits: options.MaximumStopVisits,
			},
		},
	}
}

// Marshal renders the request as a complete XML document.
func (r *Request) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding SIRI request: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
