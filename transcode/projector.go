package transcode

import (
	"github.com/thms-rmb/marcXmlToJson/marc"
	"github.com/thms-rmb/marcXmlToJson/token"
)

// Project writes the JSON object representing record to out.  It writes
// exactly one value; separators around it are the responsibility of out.
func Project(record *marc.Record, out token.WriteStream) {
	out.Put(&token.StartObject{})
	for _, leader := range record.Leaders() {
		out.Put(leaderKey)
		out.Put(token.StringScalar(leader))
	}

	out.Put(fieldsKey)
	out.Put(&token.StartArray{})
	for _, c := range record.Controlfields {
		if c.IsLeader() {
			continue
		}
		out.Put(&token.StartObject{})
		out.Put(token.StringKey(c.Tag))
		out.Put(token.StringScalar(c.Value))
		out.Put(&token.EndObject{})
	}
	for _, d := range record.Datafields {
		projectDatafield(d, out)
	}
	out.Put(&token.EndArray{})

	out.Put(&token.EndObject{})
}

func projectDatafield(d marc.Datafield, out token.WriteStream) {
	out.Put(&token.StartObject{})
	out.Put(token.StringKey(d.Tag))
	out.Put(&token.StartObject{})

	out.Put(subfieldsKey)
	out.Put(&token.StartArray{})
	for _, s := range d.Subfields {
		out.Put(&token.StartObject{})
		out.Put(token.StringKey(s.Code))
		out.Put(token.StringScalar(s.Value))
		out.Put(&token.EndObject{})
	}
	out.Put(&token.EndArray{})

	out.Put(ind1Key)
	out.Put(token.StringScalar(d.Ind1))
	out.Put(ind2Key)
	out.Put(token.StringScalar(d.Ind2))

	out.Put(&token.EndObject{})
	out.Put(&token.EndObject{})
}

var (
	leaderKey    = token.StringKey("leader")
	fieldsKey    = token.StringKey("fields")
	subfieldsKey = token.StringKey("subfields")
	ind1Key      = token.StringKey("ind1")
	ind2Key      = token.StringKey("ind2")
)
