// Package transcode turns a stream of MARCXML records into a JSON array,
// one object per record.
//
// Records are pulled one at a time from a marc.Reader, projected into JSON
// tokens and written out straight away:
//
//	read record -> project to tokens -> write JSON -> flush
//
// Only one record is held in memory at a time, so memory usage does not
// grow with the size of the input, and output is available to downstream
// consumers (e.g. 'head' or 'less') as soon as each record is decoded.
//
// Each record is written in this shape:
//
//	{
//	  "leader": "...",
//	  "fields": [
//	    {"001": "..."},
//	    {"245": {"subfields": [{"a": "..."}], "ind1": "1", "ind2": "0"}}
//	  ]
//	}
//
// The "leader" key is written once for every controlfield tagged "000", so a
// record with several of them produces an object with a repeated key.
package transcode
