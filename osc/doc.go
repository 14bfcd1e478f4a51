// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc provides the receiving side of OpenSoundControl: packet parsing, address dispatching and a UDP server.
//
//This implementation is based on the Open Sound Control 1.0 Specification (http://opensoundcontrol.org/spec-1_0.html).
//It only reads OSC; a Kyma APU talks to us, we don't talk back through this package.
//
//Features
//
//- Parses OSC messages with the following TypeTags:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' ([]byte)
//	't' (Timetag)
//	'h' (int64)
//	'd' (float64)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//
//- Parses OSC bundles, including Timetags
//
//- OSC Address matching and dispatching.
//
//Packets
//
//The unit of transmission of OSC is an OSC Packet. An OSC packet consists of its contents,
//a contiguous block of binary data. The size of an OSC packet is always 32-bit aligned.
//
//OSC packets come in two flavors:
//
//OSC Messages: An OSC message consists of an OSC address pattern and zero or more OSC arguments.
//
//OSC Bundles: An OSC Bundle consists of an OSC Timetag, followed by zero or more OSC bundle elements.
//Each bundle element can be another OSC bundle or OSC message.
//
//Blobs
//
//A blob argument ('b') is a 4 byte big-endian length N followed by N bytes, padded to a 4 byte boundary.
//Message.Arguments holds only the N payload bytes, with the length and padding removed.
//
//Usage
//
//  d := &osc.Dispatcher{}
//  d.AddMethodFunc("/vcs", func(msg *osc.Message) {
//      fmt.Println(msg)
//  })
//
//  server := &osc.Server{
//      Addr:       "127.0.0.1:8000",
//      Dispatcher: d,
//  }
//  server.ListenAndServe()
package osc
