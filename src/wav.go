package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Write generated audio to a .WAV file.
 *
 * Description: Used by the generator commands and the round trip
 *		tests.  16 bit mono PCM only; the header sizes are
 *		fixed up when the file is closed.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

type wav_header struct { /* .WAV file header. */
	Riff            [4]byte /* "RIFF" */
	Filesize        int32   /* file length - 8 */
	Wave            [4]byte /* "WAVE" */
	Fmt             [4]byte /* "fmt " */
	Fmtsize         int32   /* 16. */
	Wformattag      int16   /* 1 for PCM. */
	Nchannels       int16   /* 1 for mono. */
	Nsamplespersec  int32   /* sampling freq, Hz. */
	Navgbytespersec int32   /* = nblockalign * nsamplespersec. */
	Nblockalign     int16   /* = wbitspersample / 8 * nchannels. */
	Wbitspersample  int16   /* 16. */
	Data            [4]byte /* "data" */
	Datasize        int32   /* number of bytes following. */
}

type wav_writer_s struct {
	fp         *os.File
	buf        *bufio.Writer
	header     wav_header
	byte_count int
}

/*-------------------------------------------------------------------
 *
 * Name:        wav_create
 *
 * Purpose:     Open a .WAV format file for output.
 *
 * Inputs:      fname	- Name of .WAV file to create.
 *		rate	- Samples per second.
 *
 *----------------------------------------------------------------*/

func wav_create(fname string, rate int) (*wav_writer_s, error) {
	var w = &wav_writer_s{}

	w.header.Riff = [4]byte{'R', 'I', 'F', 'F'}
	w.header.Wave = [4]byte{'W', 'A', 'V', 'E'}
	w.header.Fmt = [4]byte{'f', 'm', 't', ' '}
	w.header.Fmtsize = 16   // Always 16.
	w.header.Wformattag = 1 // 1 for PCM.
	w.header.Nchannels = 1
	w.header.Nsamplespersec = int32(rate)
	w.header.Wbitspersample = 16
	w.header.Nblockalign = w.header.Wbitspersample / 8 * w.header.Nchannels
	w.header.Navgbytespersec = int32(w.header.Nblockalign) * w.header.Nsamplespersec
	w.header.Data = [4]byte{'d', 'a', 't', 'a'}

	var fp, openErr = os.Create(fname) //nolint:gosec // User-supplied output file from CLI
	if openErr != nil {
		return nil, fmt.Errorf("couldn't open %s for write: %w", fname, openErr)
	}
	w.fp = fp

	/* Sizes in the header get filled in when the file is closed. */

	var writeErr = binary.Write(w.fp, binary.LittleEndian, w.header)
	if writeErr != nil {
		w.fp.Close() //nolint:errcheck
		return nil, fmt.Errorf("couldn't write header to %s: %w", fname, writeErr)
	}

	w.buf = bufio.NewWriter(w.fp)

	return w, nil
}

func (w *wav_writer_s) put_sample(sam int16) {
	binary.Write(w.buf, binary.LittleEndian, sam) //nolint:errcheck
	w.byte_count += 2
}

/*-------------------------------------------------------------------
 *
 * Name:        wav_close
 *
 * Purpose:     Flush the audio and fix up the lengths in the header.
 *
 *----------------------------------------------------------------*/

func (w *wav_writer_s) wav_close() error {
	if w.fp == nil {
		return fmt.Errorf("wav file already closed")
	}

	w.header.Filesize = int32(w.byte_count + binary.Size(new(wav_header)) - 8)
	w.header.Datasize = int32(w.byte_count)

	var flushErr = w.buf.Flush()
	if flushErr != nil {
		return flushErr
	}

	var _, seekErr = w.fp.Seek(0, io.SeekStart)
	if seekErr != nil {
		return seekErr
	}

	var writeErr = binary.Write(w.fp, binary.LittleEndian, w.header)
	if writeErr != nil {
		return writeErr
	}

	var closeErr = w.fp.Close()
	w.fp = nil

	return closeErr
}
