package netex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/departures/pkg/ctdf"
)

const centralDocument = `<?xml version="1.0" encoding="UTF-8"?>
<PublicationDelivery xmlns="http://www.netex.org.uk/netex" version="1.09:FR-NETEX-2.1-1.0">
  <PublicationTimestamp>2024-03-01T08:00:00Z</PublicationTimestamp>
  <ParticipantRef>TEST</ParticipantRef>
  <dataObjects>
    <GeneralFrame id="TEST:GeneralFrame:1" version="any">
      <members>
        <Quay id="Q1" version="any">
          <Name>Central - A</Name>
          <SiteRef ref="S1"/>
          <TransportMode>tram</TransportMode>
        </Quay>
        <StopPlace id="S1" version="any">
          <Name>Central</Name>
          <TransportMode>tram</TransportMode>
          <OtherTransportModes>ferry</OtherTransportModes>
        </StopPlace>
        <Quay id="Q2" version="any">
          <Name>Central - B</Name>
          <SiteRef ref="S1"/>
          <TransportMode>bus</TransportMode>
        </Quay>
      </members>
    </GeneralFrame>
  </dataObjects>
</PublicationDelivery>`

func TestLoad(t *testing.T) {
	stops, err := Load(strings.NewReader(centralDocument))
	require.NoError(t, err)
	require.Len(t, stops, 2)

	assert.Equal(t, "Q1", stops[0].PrimaryIdentifier)
	assert.Equal(t, "Central - A", stops[0].PrimaryName)
	assert.Equal(t, ctdf.TransportTypeTram, stops[0].TransportType)
	assert.Equal(t, "S1", stops[0].ParentStopGroupRef)
	assert.Equal(t, []ctdf.TransportType{ctdf.TransportTypeFerry}, stops[0].OtherTransportTypes)
	assert.Equal(t, "centrala", stops[0].NormalisedName)
	assert.Equal(t, "q1", stops[0].NormalisedIdentifier)

	assert.Equal(t, "Q2", stops[1].PrimaryIdentifier)
	assert.Equal(t, ctdf.TransportTypeBus, stops[1].TransportType)
	assert.Equal(t, "S1", stops[1].ParentStopGroupRef)
}

func TestParseFileMetadata(t *testing.T) {
	doc := PublicationDelivery{}
	require.NoError(t, doc.ParseFile(strings.NewReader(centralDocument)))

	assert.True(t, doc.MembersFound)
	assert.Equal(t, "1.09:FR-NETEX-2.1-1.0", doc.Version)
	assert.Equal(t, "2024-03-01T08:00:00Z", doc.PublicationTimestamp)
	assert.Len(t, doc.Quays, 2)
	assert.Len(t, doc.StopPlaces, 1)
}

func TestLoadOtherTransportModesOrder(t *testing.T) {
	document := wrapMembers(`
        <StopPlace id="S1"><OtherTransportModes>bus ferry</OtherTransportModes></StopPlace>
        <Quay id="Q1"><Name>Harbour</Name><SiteRef ref="S1"/><TransportMode>tram</TransportMode></Quay>`)

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 1)

	assert.Equal(t, []ctdf.TransportType{ctdf.TransportTypeBus, ctdf.TransportTypeFerry}, stops[0].OtherTransportTypes)
}

func TestLoadUnresolvedReference(t *testing.T) {
	document := wrapMembers(`
        <StopPlace id="S1"><OtherTransportModes>bus</OtherTransportModes></StopPlace>
        <Quay id="Q1"><Name>Nowhere</Name><SiteRef ref="S404"/><TransportMode>bus</TransportMode></Quay>
        <Quay id="Q2"><Name>No ref</Name><TransportMode>bus</TransportMode></Quay>`)

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 2)

	for _, stop := range stops {
		assert.False(t, stop.HasParent())
		assert.Empty(t, stop.ParentStopGroupRef)
		assert.NotNil(t, stop.OtherTransportTypes)
		assert.Empty(t, stop.OtherTransportTypes)
	}
}

func TestLoadSingleAndRepeatedElements(t *testing.T) {
	single := wrapMembers(`<Quay id="Q1"><Name>Only</Name><TransportMode>bus</TransportMode></Quay>`)

	stops, err := Load(strings.NewReader(single))
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "Only", stops[0].PrimaryName)

	repeated := wrapMembers(`
        <Quay id="Q1"><Name>First</Name></Quay>
        <Quay id="Q2"><Name>Second</Name></Quay>
        <Quay id="Q3"><Name>Third</Name></Quay>`)

	stops, err = Load(strings.NewReader(repeated))
	require.NoError(t, err)
	require.Len(t, stops, 3)
	assert.Equal(t, "Third", stops[2].PrimaryName)
}

func TestLoadMissingIdentifier(t *testing.T) {
	stops, err := Load(strings.NewReader(wrapMembers(`<Quay><Name>Anonymous</Name></Quay>`)))
	require.NoError(t, err)
	require.Len(t, stops, 1)

	assert.Equal(t, "", stops[0].PrimaryIdentifier)
	assert.Equal(t, "", stops[0].NormalisedIdentifier)
}

func TestLoadUnknownTransportModePassesThrough(t *testing.T) {
	stops, err := Load(strings.NewReader(wrapMembers(`<Quay id="Q1"><Name>Lift</Name><TransportMode>snowAndIce</TransportMode></Quay>`)))
	require.NoError(t, err)
	require.Len(t, stops, 1)

	assert.Equal(t, ctdf.TransportType("snowAndIce"), stops[0].TransportType)
	assert.False(t, stops[0].TransportType.IsKnown())
}

func TestLoadMissingMembers(t *testing.T) {
	documents := []string{
		`<PublicationDelivery><dataObjects><GeneralFrame></GeneralFrame></dataObjects></PublicationDelivery>`,
		`<PublicationDelivery><dataObjects><GeneralFrame><members/></GeneralFrame></dataObjects></PublicationDelivery>`,
		`<SomethingElse><Quay id="Q1"><Name>Ignored</Name></Quay></SomethingElse>`,
		``,
	}

	for _, document := range documents {
		stops, err := Load(strings.NewReader(document))
		require.NoError(t, err)
		assert.Empty(t, stops)
	}
}

func TestLoadIgnoresQuaysOutsideMembers(t *testing.T) {
	document := `<PublicationDelivery><dataObjects>
      <SiteFrame><stopPlaces><Quay id="QX"><Name>Elsewhere</Name></Quay></stopPlaces></SiteFrame>
      <GeneralFrame><members><Quay id="Q1"><Name>Inside</Name></Quay></members></GeneralFrame>
    </dataObjects></PublicationDelivery>`

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "Q1", stops[0].PrimaryIdentifier)
}

func TestLoadCompositeFrame(t *testing.T) {
	document := `<PublicationDelivery><dataObjects><CompositeFrame><frames>
      <GeneralFrame><members>
        <StopPlace id="S1"/>
        <Quay id="Q1"><Name>Wrapped</Name><SiteRef ref="S1"/></Quay>
      </members></GeneralFrame>
    </frames></CompositeFrame></dataObjects></PublicationDelivery>`

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "S1", stops[0].ParentStopGroupRef)
}

func TestLoadNestedQuays(t *testing.T) {
	document := wrapMembers(`
        <StopPlace id="S1">
          <Name>Harbour</Name>
          <OtherTransportModes>ferry</OtherTransportModes>
          <quays>
            <Quay id="Q1"><Name>Harbour - North</Name><TransportMode>bus</TransportMode></Quay>
          </quays>
        </StopPlace>`)

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "S1", stops[0].ParentStopGroupRef)
	assert.Equal(t, []ctdf.TransportType{ctdf.TransportTypeFerry}, stops[0].OtherTransportTypes)
}

func TestLoadFirstDuplicateStopPlaceWins(t *testing.T) {
	document := wrapMembers(`
        <StopPlace id="S1"><OtherTransportModes>bus</OtherTransportModes></StopPlace>
        <StopPlace id="S1"><OtherTransportModes>rail</OtherTransportModes></StopPlace>
        <Quay id="Q1"><SiteRef ref="S1"/></Quay>`)

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, []ctdf.TransportType{ctdf.TransportTypeBus}, stops[0].OtherTransportTypes)
}

func TestLoadLatin1Document(t *testing.T) {
	document := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<PublicationDelivery><dataObjects><GeneralFrame><members>" +
		"<Quay id=\"Q1\"><Name>Caf\xe9 - Nord</Name></Quay>" +
		"</members></GeneralFrame></dataObjects></PublicationDelivery>"

	stops, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "Café - Nord", stops[0].PrimaryName)
	assert.Equal(t, "cafenord", stops[0].NormalisedName)
}

func TestLoadMalformedDocument(t *testing.T) {
	_, err := Load(strings.NewReader(`<PublicationDelivery><dataObjects><GeneralFrame><members><Quay id="Q1">`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stops.xml")
	require.NoError(t, os.WriteFile(path, []byte(centralDocument), 0o600))

	stops, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, stops, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestIsMembersContainer(t *testing.T) {
	assert.True(t, isMembersContainer([]string{"PublicationDelivery", "dataObjects", "GeneralFrame", "members"}))
	assert.True(t, isMembersContainer([]string{"PublicationDelivery", "dataObjects", "CompositeFrame", "frames", "GeneralFrame", "members"}))
	assert.False(t, isMembersContainer([]string{"PublicationDelivery", "dataObjects", "GeneralFrame"}))
	assert.False(t, isMembersContainer([]string{"PublicationDelivery", "dataObjects", "SiteFrame", "members"}))
	assert.False(t, isMembersContainer([]string{"dataObjects", "GeneralFrame", "members"}))
}

func wrapMembers(members string) string {
	return `<PublicationDelivery xmlns="http://www.netex.org.uk/netex" version="1.1"><dataObjects><GeneralFrame><members>` +
		members +
		`</members></GeneralFrame></dataObjects></PublicationDelivery>`
}
