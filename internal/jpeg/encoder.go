package jpeg

/*
#cgo pkg-config: libjpeg
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <jpeglib.h>
#include <setjmp.h>

typedef struct {
    struct jpeg_error_mgr pub;
    jmp_buf               jmpbuf;
    char                  msg[JMSG_LENGTH_MAX];
} encode_err_mgr;

static void encode_error_exit(j_common_ptr cinfo) {
    encode_err_mgr *e = (encode_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

typedef struct {
    unsigned char *buf;
    unsigned long  size;
    int            has_error;
    char           error_msg[256];
} encode_result;

// encode_rgb_jpeg encodes interleaved RGB pixels to a baseline JFIF JPEG.
// libjpeg's defaults give YCbCr with 2x2 luma / 1x1 chroma sampling (4:2:0).
static encode_result encode_rgb_jpeg(
    const unsigned char *pixels, int width, int height,
    const unsigned int *luma_qtable, const unsigned int *chroma_qtable,
    int optimize
) {
    encode_result res;
    memset(&res, 0, sizeof(res));

    struct jpeg_compress_struct cinfo;
    encode_err_mgr jerr;

    cinfo.err = jpeg_std_error(&jerr.pub);
    jerr.pub.error_exit = encode_error_exit;

    if (setjmp(jerr.jmpbuf)) {
        strncpy(res.error_msg, jerr.msg, sizeof(res.error_msg)-1);
        res.has_error = 1;
        jpeg_destroy_compress(&cinfo);
        if (res.buf != NULL) {
            free(res.buf);
            res.buf = NULL;
        }
        return res;
    }

    jpeg_create_compress(&cinfo);
    jpeg_mem_dest(&cinfo, &res.buf, &res.size);

    cinfo.image_width = width;
    cinfo.image_height = height;
    cinfo.input_components = 3;
    cinfo.in_color_space = JCS_RGB;

    jpeg_set_defaults(&cinfo);
    cinfo.optimize_coding = optimize ? TRUE : FALSE;

    // Set quantization tables directly (pre-scaled values).
    if (cinfo.quant_tbl_ptrs[0] == NULL)
        cinfo.quant_tbl_ptrs[0] = jpeg_alloc_quant_table((j_common_ptr)&cinfo);
    if (cinfo.quant_tbl_ptrs[1] == NULL)
        cinfo.quant_tbl_ptrs[1] = jpeg_alloc_quant_table((j_common_ptr)&cinfo);

    for (int i = 0; i < 64; i++) {
        cinfo.quant_tbl_ptrs[0]->quantval[i] = (UINT16)luma_qtable[i];
        cinfo.quant_tbl_ptrs[1]->quantval[i] = (UINT16)chroma_qtable[i];
    }
    cinfo.quant_tbl_ptrs[0]->sent_table = FALSE;
    cinfo.quant_tbl_ptrs[1]->sent_table = FALSE;

    cinfo.comp_info[0].quant_tbl_no = 0;
    cinfo.comp_info[1].quant_tbl_no = 1;
    cinfo.comp_info[2].quant_tbl_no = 1;

    jpeg_start_compress(&cinfo, TRUE);

    // Row 0 of the buffer is the top scanline.
    int row_stride = width * 3;
    while (cinfo.next_scanline < cinfo.image_height) {
        const unsigned char *row = pixels + (size_t)cinfo.next_scanline * row_stride;
        jpeg_write_scanlines(&cinfo, (JSAMPARRAY)&row, 1);
    }

    jpeg_finish_compress(&cinfo);
    jpeg_destroy_compress(&cinfo);
    return res;
}

static void free_encode_buf(unsigned char *buf) {
    free(buf);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 95

// MaxDimension is the largest width or height libjpeg will encode.
const MaxDimension = 65500

// EncoderOptions controls RGB JPEG encoding.
type EncoderOptions struct {
	Quality  int  // 0-100
	Optimize bool // compute optimal Huffman tables
}

// Validate reports whether the options are in range.
func (o EncoderOptions) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("quality must be in 0-100, got %d", o.Quality)
	}
	return nil
}

// EncodeRGB encodes RGB pixel data to a baseline JPEG.
// pixels must be width*height*3 bytes (RGB interleaved, top row first).
func EncodeRGB(pixels []byte, width, height int, opts EncoderOptions) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("image size %dx%d exceeds the JPEG limit of %d pixels", width, height, MaxDimension)
	}
	expectedSize := width * height * 3
	if len(pixels) != expectedSize {
		return nil, fmt.Errorf("expected %d RGB bytes, got %d", expectedSize, len(pixels))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lumaTable, chromaTable := GenerateQuantTables(opts.Quality)

	var lumaQtableC [64]C.uint
	var chromaQtableC [64]C.uint
	for i := 0; i < 64; i++ {
		lumaQtableC[i] = C.uint(lumaTable[i])
		chromaQtableC[i] = C.uint(chromaTable[i])
	}

	optimize := C.int(0)
	if opts.Optimize {
		optimize = 1
	}

	res := C.encode_rgb_jpeg(
		(*C.uchar)(unsafe.Pointer(&pixels[0])),
		C.int(width), C.int(height),
		&lumaQtableC[0], &chromaQtableC[0],
		optimize,
	)

	if res.has_error != 0 {
		return nil, fmt.Errorf("libjpeg encode: %s", C.GoString(&res.error_msg[0]))
	}

	defer C.free_encode_buf(res.buf)

	output := C.GoBytes(unsafe.Pointer(res.buf), C.int(res.size))
	return output, nil
}
